// Package tui renders the workbench in a terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jobhunt-workbench/internal/workbench"
)

type focus int

const (
	focusForm focus = iota
	focusResults
)

// Form fields, in tab order within the form.
const (
	fieldKeywords = iota
	fieldLocation
	fieldWorkTypes
	fieldCount
)

type noticeExpiredMsg struct{ seq int }

// App is the Bubble Tea model. All job-search state lives in the wrapped
// workbench.Model; App only tracks what the terminal needs on top of it.
type App struct {
	wb workbench.Model

	focus     focus
	field     int
	typeIdx   int // highlighted work-type toggle
	cursor    int // row within the current page
	filtering bool
	filterCol int

	noticeSeq int
	noticeTTL time.Duration

	width int
}

type Option func(*App)

// WithNoticeTTL sets how long a toast stays on screen.
func WithNoticeTTL(d time.Duration) Option {
	return func(a *App) { a.noticeTTL = d }
}

func New(wb workbench.Model, opts ...Option) App {
	a := App{wb: wb, noticeTTL: 4 * time.Second}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a App) Workbench() workbench.Model { return a.wb }

func (a App) Init() tea.Cmd {
	return a.wb.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil
	case tea.KeyMsg:
		return a.updateKey(msg)
	case workbench.NotificationMsg:
		a.noticeSeq++
		seq := a.noticeSeq
		return a, tea.Tick(a.noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.wb = a.wb.DismissNotice()
		}
		return a, nil
	case workbench.SearchCompleted:
		a.cursor = 0
	}
	return a.send(msg)
}

// send forwards msg to the workbench.
func (a App) send(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	a.wb, cmd = a.wb.Update(msg)
	a.clampCursor()
	return a, cmd
}

func (a *App) clampCursor() {
	n := len(a.wb.State().PagedView())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}
