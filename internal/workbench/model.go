package workbench

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
)

// Service is the set of remote operations the workbench consumes.
type Service interface {
	Search(ctx context.Context, c domain.SearchCriteria) ([]domain.JobRecord, error)
	ListBoards(ctx context.Context) ([]domain.Board, error)
	CreateApplications(ctx context.Context, jobs []domain.JobRecord) ([]string, error)
}

// Option configures a Model.
type Option func(*Model)

func WithLogger(l *logging.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTimeout bounds every remote call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) { m.timeout = d }
}

// WithContext sets the parent context of remote calls.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// Model wires State to a Service. It is a value: Update returns the next
// Model and leaves the receiver untouched.
type Model struct {
	state   State
	svc     Service
	ctx     context.Context
	timeout time.Duration
	log     *logging.Logger
}

func New(svc Service, opts ...Option) Model {
	m := Model{
		state:   NewState(),
		svc:     svc,
		ctx:     context.Background(),
		timeout: 30 * time.Second,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) State() State { return m.state }

// Init loads the board list. Its failure is logged and otherwise ignored.
func (m Model) Init() tea.Cmd {
	return m.loadBoards()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case KeywordsChanged:
		m.state = m.state.withKeywords(msg.Value)
	case LocationChanged:
		m.state = m.state.withLocation(msg.Value)
	case WorkTypesChanged:
		m.state = m.state.withWorkTypes(msg.Values)

	case SearchRequested:
		var epoch uint64
		m.state, epoch = m.state.startSearch()
		criteria := m.state.Criteria()
		m.log.Info("search started", "keywords", criteria.Keywords, "location", criteria.Location,
			"work_types", criteria.WorkTypes, "epoch", epoch)
		return m, m.search(criteria, epoch)

	case SearchCompleted:
		if msg.epoch != m.state.searchEpoch {
			m.log.Debug("stale search response dropped", "epoch", msg.epoch, "current", m.state.searchEpoch)
			return m, nil
		}
		m.state = m.state.completeSearch(msg.Records, msg.Err)
		if msg.Err != nil {
			m.log.Warn("search failed", "err", msg.Err)
		} else {
			m.log.Info("search completed", "results", len(msg.Records))
		}

	case ColumnFilterChanged:
		next, ok := m.state.withFilter(msg.Column, msg.Value)
		if !ok {
			m.log.Warn("unknown filter column", "column", msg.Column)
			return m, nil
		}
		m.state = next
	case ClearFiltersRequested:
		m.state = m.state.clearFilters()

	case SortRequested:
		if !msg.Field.valid() {
			m.log.Warn("unknown sort field", "field", msg.Field)
			return m, nil
		}
		m.state = m.state.sortBy(msg.Field, msg.Direction)

	case PageNavigationRequested:
		m.state = m.state.navigate(msg.Nav)

	case SelectionChanged:
		m.state = m.state.withSelection(msg.Records)

	case BulkSubmitRequested:
		next, jobs, err := m.state.startBulk()
		if err != nil {
			var w *ValidationWarning
			if errors.As(err, &w) {
				return m.notify(w.Notification())
			}
			return m, nil
		}
		m.state = next
		m.log.Info("creating applications", "count", len(jobs))
		return m, m.createApplications(jobs)

	case ApplicationsCreated:
		var n Notification
		m.state, n = m.state.completeBulk(msg.IDs, msg.Err)
		if msg.Err != nil {
			m.log.Warn("create applications failed", "err", msg.Err)
		} else {
			m.log.Info("applications created", "count", len(msg.IDs))
		}
		return m.notify(n)

	case BoardsLoaded:
		if msg.Err != nil {
			m.log.Warn("board lookup failed", "err", msg.Err)
			return m, nil
		}
		m.state.Boards = msg.Boards
	}
	return m, nil
}

func (m Model) notify(n Notification) (Model, tea.Cmd) {
	m.state.Notice = &n
	return m, func() tea.Msg { return NotificationMsg{Notification: n} }
}

// DismissNotice clears the current toast.
func (m Model) DismissNotice() Model {
	m.state.Notice = nil
	return m
}

func (m Model) callCtx() (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(m.ctx, m.timeout)
	}
	return context.WithCancel(m.ctx)
}

func (m Model) search(c domain.SearchCriteria, epoch uint64) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		recs, err := m.svc.Search(ctx, c)
		return SearchCompleted{Records: recs, Err: err, epoch: epoch}
	}
}

func (m Model) createApplications(jobs []domain.JobRecord) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		ids, err := m.svc.CreateApplications(ctx, jobs)
		return ApplicationsCreated{IDs: ids, Err: err}
	}
}

func (m Model) loadBoards() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		boards, err := m.svc.ListBoards(ctx)
		return BoardsLoaded{Boards: boards, Err: err}
	}
}
