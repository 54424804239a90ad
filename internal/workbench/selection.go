package workbench

import (
	"fmt"
	"slices"

	"jobhunt-workbench/internal/domain"
)

// Selection is an immutable set of full records keyed by ID, kept in the
// order they were given. The full record is retained because the create
// operation needs complete job data, not just IDs.
type Selection struct {
	records []domain.JobRecord
	index   map[string]int
}

// NewSelection builds a selection from records verbatim. A repeated ID keeps
// its first occurrence.
func NewSelection(records []domain.JobRecord) Selection {
	s := Selection{
		records: make([]domain.JobRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		if _, dup := s.index[r.ID]; dup {
			continue
		}
		s.index[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
	return s
}

func (s Selection) Count() int { return len(s.records) }

func (s Selection) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Records returns a copy of the selected records.
func (s Selection) Records() []domain.JobRecord {
	return slices.Clone(s.records)
}

// IDs returns the selected IDs in selection order.
func (s Selection) IDs() []string {
	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.ID
	}
	return ids
}

// StatusText is the selection banner; the "(s)" suffix is literal for any count.
func StatusText(n int) string {
	return fmt.Sprintf("%d job(s) selected", n)
}

// CreateButtonLabel is the bulk action label for n selected records.
func CreateButtonLabel(n int) string {
	if n == 1 {
		return "Create 1 Application"
	}
	return fmt.Sprintf("Create %d Applications", n)
}
