package workbench

import (
	"slices"

	"jobhunt-workbench/internal/domain"
)

// OperationState tracks one remote operation.
type OperationState struct {
	IsLoading    bool
	HasError     bool
	ErrorMessage string
}

// State is the full workbench state. Transitions return a new value; the
// slices it holds are never written after construction.
type State struct {
	Keywords  string
	Location  string
	WorkTypes []string

	base []domain.JobRecord
	view []domain.JobRecord

	Filters FilterState
	Sort    SortSpec
	// sorted is false until the user requests a sort, so a fresh result
	// keeps the order the remote returned.
	sorted bool
	Page   int

	Selection Selection

	Search      OperationState
	Bulk        OperationState
	HasSearched bool

	Boards []domain.Board
	Notice *Notification

	searchEpoch uint64
}

// NewState returns the initial state: nothing searched, page 1.
func NewState() State {
	return State{
		Sort:      DefaultSort,
		Page:      1,
		Selection: NewSelection(nil),
	}
}

// Criteria is the request built from the search form.
func (s State) Criteria() domain.SearchCriteria {
	wt := slices.Clone(s.WorkTypes)
	if wt == nil {
		wt = []string{}
	}
	return domain.SearchCriteria{Keywords: s.Keywords, Location: s.Location, WorkTypes: wt}
}

// Base returns the records of the last successful search.
func (s State) Base() []domain.JobRecord { return slices.Clone(s.base) }

// View returns the filtered and sorted records, before paging.
func (s State) View() []domain.JobRecord { return slices.Clone(s.view) }

// Sorted reports whether a user sort is applied to the view. Any filter
// change drops it and leaves Sort as the last indicator.
func (s State) Sorted() bool { return s.sorted }

func (s State) HasResults() bool { return len(s.view) > 0 && !s.Search.IsLoading }

func (s State) HasSearchResults() bool { return len(s.base) > 0 && !s.Search.IsLoading }

// IsEmpty is true once a search finished without error and returned nothing.
func (s State) IsEmpty() bool {
	return !s.Search.IsLoading && s.HasSearched && len(s.base) == 0 && !s.Search.HasError
}

// NoFilteredResults is true when the search had results but filters hide all of them.
func (s State) NoFilteredResults() bool { return s.HasSearchResults() && len(s.view) == 0 }

func (s State) TotalPages() int { return TotalPages(len(s.view)) }

func (s State) PagedView() []domain.JobRecord { return Window(s.view, s.Page) }

func (s State) IsFirstPage() bool { return s.Page == 1 }

func (s State) IsLastPage() bool { return s.Page == s.TotalPages() }

func (s State) ShowFirstButton() bool {
	total := s.TotalPages()
	return total > 2 && s.Page > 2
}

func (s State) ShowLastButton() bool {
	total := s.TotalPages()
	return total > 2 && s.Page < total-1
}

func (s State) SelectedCount() int { return s.Selection.Count() }

func (s State) HasSelection() bool { return s.Selection.Count() > 0 }

func (s State) SelectionStatus() string { return StatusText(s.Selection.Count()) }

func (s State) CreateButtonLabel() string { return CreateButtonLabel(s.Selection.Count()) }

// derive recomputes the view from base. Paging goes back to page 1.
func (s State) derive() State {
	v := ApplyFilters(s.base, s.Filters)
	if s.sorted {
		v = SortRecords(v, s.Sort.Field, s.Sort.Direction)
	}
	s.view = v
	s.Page = 1
	return s
}

func (s State) withKeywords(v string) State {
	s.Keywords = v
	return s
}

func (s State) withLocation(v string) State {
	s.Location = v
	return s
}

func (s State) withWorkTypes(v []string) State {
	s.WorkTypes = slices.Clone(v)
	return s
}

// startSearch clears results, errors, filters, sort and selection, and
// returns the epoch the response must carry to be applied.
func (s State) startSearch() (State, uint64) {
	s.base = nil
	s.view = nil
	s.Filters = FilterState{}
	s.Sort = DefaultSort
	s.sorted = false
	s.Page = 1
	s.Selection = NewSelection(nil)
	s.Search = OperationState{IsLoading: true}
	s.HasSearched = true
	s.searchEpoch++
	return s, s.searchEpoch
}

func (s State) completeSearch(records []domain.JobRecord, err error) State {
	s.Search.IsLoading = false
	if err != nil {
		s.Search.HasError = true
		s.Search.ErrorMessage = remoteMessage(err, msgSearchFailed)
		s.base = nil
		s.view = nil
		s.Page = 1
		return s
	}
	s.base = slices.Clone(records)
	if s.base == nil {
		s.base = []domain.JobRecord{}
	}
	s.Filters = FilterState{}
	s.Sort = DefaultSort
	s.sorted = false
	return s.derive()
}

func (s State) withFilter(c Column, v string) (State, bool) {
	f, ok := s.Filters.With(c, v)
	if !ok {
		return s, false
	}
	s.Filters = f
	s.sorted = false
	return s.derive(), true
}

// clearFilters restores the base order. Sort stays as the indicator only.
func (s State) clearFilters() State {
	s.Filters = FilterState{}
	s.sorted = false
	return s.derive()
}

func (s State) sortBy(field Column, dir Direction) State {
	if dir != Descending {
		dir = Ascending
	}
	s.Sort = SortSpec{Field: field, Direction: dir}
	s.sorted = true
	return s.derive()
}

func (s State) navigate(nav PageNav) State {
	s.Page = Navigate(s.Page, s.TotalPages(), nav)
	return s
}

func (s State) withSelection(records []domain.JobRecord) State {
	s.Selection = NewSelection(records)
	return s
}

// startBulk validates the selection and marks the bulk action as loading.
func (s State) startBulk() (State, []domain.JobRecord, error) {
	if s.Selection.Count() == 0 {
		return s, nil, ErrNoSelection
	}
	s.Bulk = OperationState{IsLoading: true}
	return s, s.Selection.Records(), nil
}

func (s State) completeBulk(ids []string, err error) (State, Notification) {
	s.Bulk.IsLoading = false
	if err != nil {
		msg := remoteMessage(err, msgCreateFailed)
		s.Bulk.HasError = true
		s.Bulk.ErrorMessage = msg
		return s, failedNotification(msg)
	}
	s.Bulk.HasError = false
	s.Bulk.ErrorMessage = ""
	s.Selection = NewSelection(nil)
	return s, createdNotification(len(ids))
}
