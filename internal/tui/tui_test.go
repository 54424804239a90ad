package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/workbench"
)

type fakeService struct {
	records  []domain.JobRecord
	boards   []domain.Board
	ids      []string
	searched []domain.SearchCriteria
	created  [][]domain.JobRecord
}

func (f *fakeService) Search(_ context.Context, c domain.SearchCriteria) ([]domain.JobRecord, error) {
	f.searched = append(f.searched, c)
	return f.records, nil
}

func (f *fakeService) ListBoards(context.Context) ([]domain.Board, error) {
	return f.boards, nil
}

func (f *fakeService) CreateApplications(_ context.Context, jobs []domain.JobRecord) ([]string, error) {
	f.created = append(f.created, jobs)
	return f.ids, nil
}

func records(n int) []domain.JobRecord {
	out := make([]domain.JobRecord, n)
	for i := range out {
		wt := domain.WorkTypeRemote
		if i%2 == 1 {
			wt = domain.WorkTypeOnsite
		}
		out[i] = domain.JobRecord{
			ID:       fmt.Sprint(i + 1),
			Title:    fmt.Sprintf("Job %02d", i+1),
			Company:  "Acme",
			Location: "Toronto",
			WorkType: wt,
			Source:   "Lever",
		}
	}
	return out
}

func newApp(svc *fakeService) App {
	return New(workbench.New(svc), WithNoticeTTL(0))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys one at a time and runs every resulting command, except
// toast expiry so notices stay observable.
func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		a = apply(t, a, key(k))
	}
	return a
}

func apply(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	next, cmd := a.Update(msg)
	a = next.(App)
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 64, "command chain too long")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch m := c().(type) {
		case nil, noticeExpiredMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, m...)
		default:
			next, cmd := a.Update(m)
			a = next.(App)
			queue = append(queue, cmd)
		}
	}
	return a
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			a = apply(t, a, key("space"))
			continue
		}
		a = apply(t, a, key(string(r)))
	}
	return a
}

func TestFormBuildsCriteriaAndSearches(t *testing.T) {
	svc := &fakeService{records: records(3)}
	a := newApp(svc)

	a = typeText(t, a, "go dev")
	a = press(t, a, "backspace", "down")
	a = typeText(t, a, "Toronto")
	a = press(t, a, "down", "space", "right", "right", "space", "enter")

	require.Len(t, svc.searched, 1)
	assert.Equal(t, "go de", svc.searched[0].Keywords)
	assert.Equal(t, "Toronto", svc.searched[0].Location)
	assert.Equal(t, []string{domain.WorkTypeRemote, domain.WorkTypeHybrid}, svc.searched[0].WorkTypes)
	assert.Len(t, a.Workbench().State().View(), 3)
}

func TestInitLoadsBoards(t *testing.T) {
	svc := &fakeService{boards: []domain.Board{{Label: "Acme", Value: "lever:acme", Description: "Lever · 2 jobs"}}}
	a := newApp(svc)
	next, cmd := a.Update(a.Init()())
	a = next.(App)
	assert.Nil(t, cmd)

	assert.Len(t, a.Workbench().State().Boards, 1)
	assert.Contains(t, a.View(), "Acme (Lever · 2 jobs)")
}

func TestSelectRowsAndSubmit(t *testing.T) {
	svc := &fakeService{records: records(3), ids: []string{"a", "b"}}
	a := press(t, newApp(svc), "enter", "tab")
	assert.NotContains(t, a.View(), "job(s) selected")

	a = press(t, a, "space", "down", "space")
	st := a.Workbench().State()
	assert.Equal(t, 2, st.SelectedCount())
	assert.Equal(t, "Create 2 Applications", st.CreateButtonLabel())
	assert.Contains(t, a.View(), "2 job(s) selected")

	a = press(t, a, "space")
	assert.Equal(t, 1, a.Workbench().State().SelectedCount())
	a = press(t, a, "space")

	a = press(t, a, "c")
	require.Len(t, svc.created, 1)
	assert.Len(t, svc.created[0], 2)

	st = a.Workbench().State()
	assert.Equal(t, 0, st.SelectedCount())
	require.NotNil(t, st.Notice)
	assert.Equal(t, "2 job applications created successfully!", st.Notice.Message)
	assert.Contains(t, a.View(), "2 job applications created successfully!")
}

func TestSubmitWithoutSelectionWarns(t *testing.T) {
	svc := &fakeService{records: records(2)}
	a := press(t, newApp(svc), "enter", "tab", "c")

	assert.Empty(t, svc.created)
	st := a.Workbench().State()
	require.NotNil(t, st.Notice)
	assert.Equal(t, workbench.VariantWarning, st.Notice.Variant)
}

func TestNoticeExpires(t *testing.T) {
	svc := &fakeService{records: records(2)}
	a := press(t, newApp(svc), "enter", "tab", "c")
	require.NotNil(t, a.Workbench().State().Notice)

	next, _ := a.Update(noticeExpiredMsg{seq: a.noticeSeq - 1})
	a = next.(App)
	assert.NotNil(t, a.Workbench().State().Notice, "stale expiry keeps newer notice")

	next, _ = a.Update(noticeExpiredMsg{seq: a.noticeSeq})
	a = next.(App)
	assert.Nil(t, a.Workbench().State().Notice)
}

func TestSelectWholePageToggles(t *testing.T) {
	svc := &fakeService{records: records(15)}
	a := press(t, newApp(svc), "enter", "tab", "a")
	assert.Equal(t, workbench.PageSize, a.Workbench().State().SelectedCount())

	a = press(t, a, "n", "a")
	assert.Equal(t, 15, a.Workbench().State().SelectedCount())

	a = press(t, a, "a")
	assert.Equal(t, workbench.PageSize, a.Workbench().State().SelectedCount())
}

func TestPagingKeys(t *testing.T) {
	svc := &fakeService{records: records(35)}
	a := press(t, newApp(svc), "enter", "tab")
	st := a.Workbench().State()
	require.Equal(t, 4, st.TotalPages())

	a = press(t, a, "g")
	assert.Equal(t, 1, a.Workbench().State().Page, "first is hidden on page 1")

	a = press(t, a, "G")
	assert.Equal(t, 4, a.Workbench().State().Page)

	a = press(t, a, "G")
	assert.Equal(t, 4, a.Workbench().State().Page, "last is hidden on the last page")
	assert.Contains(t, a.View(), "Page 4 of 4")

	a = press(t, a, "p", "g")
	assert.Equal(t, 1, a.Workbench().State().Page)
}

func TestFilterEditing(t *testing.T) {
	svc := &fakeService{records: records(12)}
	a := press(t, newApp(svc), "enter", "tab", "f")
	require.True(t, a.filtering)

	a = typeText(t, a, "job 1")
	st := a.Workbench().State()
	assert.Equal(t, "job 1", st.Filters.Get(workbench.ColumnTitle))
	assert.Len(t, st.View(), 3)

	a = press(t, a, "tab", "tab", "tab", "tab", "ctrl+t")
	st = a.Workbench().State()
	assert.Equal(t, domain.WorkTypeRemote, st.Filters.Get(workbench.ColumnWorkType))
	require.Len(t, st.View(), 1)
	assert.Equal(t, "11", st.View()[0].ID)

	a = press(t, a, "esc", "x")
	assert.False(t, a.filtering)
	assert.Len(t, a.Workbench().State().View(), 12)
}

func TestSortKeys(t *testing.T) {
	svc := &fakeService{records: records(3)}
	a := press(t, newApp(svc), "enter", "tab", "s")
	st := a.Workbench().State()
	assert.Equal(t, workbench.ColumnTitle, st.Sort.Field)
	assert.True(t, st.Sorted())

	a = press(t, a, "S")
	st = a.Workbench().State()
	assert.Equal(t, workbench.Descending, st.Sort.Direction)
	assert.Equal(t, "3", st.PagedView()[0].ID)
	assert.Contains(t, a.View(), "Title ▼")

	a = press(t, a, "s")
	assert.Equal(t, workbench.ColumnSalary, a.Workbench().State().Sort.Field)

	a = press(t, a, "f", "x", "esc")
	require.False(t, a.Workbench().State().Sorted())
	a = press(t, a, "s")
	assert.NotEqual(t, workbench.ColumnTitle, a.Workbench().State().Sort.Field, "cycling continues from the indicator")
}

func TestEmptyResultMessage(t *testing.T) {
	a := press(t, newApp(&fakeService{}), "enter")
	assert.Contains(t, a.View(), workbench.EmptyMessage)
}

func TestQuit(t *testing.T) {
	a := newApp(&fakeService{})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	a = press(t, a, "tab")
	_, cmd = a.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
