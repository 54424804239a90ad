package workbench

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"jobhunt-workbench/internal/domain"
)

type fakeService struct {
	records   []domain.JobRecord
	searchErr error
	ids       []string
	createErr error
	boards    []domain.Board
	boardsErr error

	searched []domain.SearchCriteria
	created  [][]domain.JobRecord
}

func (f *fakeService) Search(_ context.Context, c domain.SearchCriteria) ([]domain.JobRecord, error) {
	f.searched = append(f.searched, c)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.records, nil
}

func (f *fakeService) ListBoards(context.Context) ([]domain.Board, error) {
	return f.boards, f.boardsErr
}

func (f *fakeService) CreateApplications(_ context.Context, jobs []domain.JobRecord) ([]string, error) {
	f.created = append(f.created, jobs)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.ids, nil
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next, cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 16; i++ {
		msg := cmd()
		if msg == nil {
			return m
		}
		m, cmd = m.Update(msg)
	}
	if cmd != nil {
		t.Fatal("command chain exceeded max depth")
	}
	return m
}

func makeRecords(n int) []domain.JobRecord {
	out := make([]domain.JobRecord, n)
	for i := range out {
		out[i] = domain.JobRecord{
			ID:       fmt.Sprint(i + 1),
			Title:    fmt.Sprintf("Job %02d", i+1),
			Company:  "Acme",
			Location: "Toronto",
			WorkType: domain.WorkTypeRemote,
			Source:   "Lever",
		}
	}
	return out
}

func sampleRecords() []domain.JobRecord {
	return []domain.JobRecord{
		{ID: "1", Title: "Senior Developer", Salary: "$95,000", Company: "TechCorp", Location: "Toronto", WorkType: "remote", Source: "LinkedIn"},
		{ID: "2", Title: "Frontend Developer", Salary: "$75,000", Company: "WebCorp", Location: "Montreal", WorkType: "hybrid", Source: "Indeed"},
		{ID: "3", Title: "backend engineer", Salary: "", Company: "DataCorp", Location: "Toronto", WorkType: "onsite", Source: "Indeed"},
		{ID: "4", Title: "Data Analyst", Salary: "$60,000", Company: "TechCorp", Location: "", WorkType: "remote", Source: "Glassdoor"},
	}
}

func ids(records []domain.JobRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func searched(t *testing.T, svc *fakeService) Model {
	t.Helper()
	return apply(t, New(svc), SearchRequested{})
}
