package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/workbench"
)

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.filtering {
		return a.updateFilter(msg)
	}
	if msg.String() == "tab" {
		if a.focus == focusForm {
			a.focus = focusResults
		} else {
			a.focus = focusForm
		}
		return a, nil
	}
	if a.focus == focusForm {
		return a.updateForm(msg)
	}
	return a.updateResults(msg)
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.wb.State()
	switch msg.String() {
	case "enter":
		if st.Search.IsLoading {
			return a, nil
		}
		return a.send(workbench.SearchRequested{})
	case "up", "shift+tab":
		a.field = (a.field + fieldCount - 1) % fieldCount
		return a, nil
	case "down":
		a.field = (a.field + 1) % fieldCount
		return a, nil
	}

	if a.field == fieldWorkTypes {
		switch msg.String() {
		case "left":
			a.typeIdx = (a.typeIdx + len(domain.WorkTypes) - 1) % len(domain.WorkTypes)
		case "right":
			a.typeIdx = (a.typeIdx + 1) % len(domain.WorkTypes)
		case " ":
			return a.send(workbench.WorkTypesChanged{Values: toggle(st.WorkTypes, domain.WorkTypes[a.typeIdx])})
		}
		return a, nil
	}

	cur := st.Keywords
	if a.field == fieldLocation {
		cur = st.Location
	}
	next, ok := editText(cur, msg)
	if !ok {
		return a, nil
	}
	if a.field == fieldLocation {
		return a.send(workbench.LocationChanged{Value: next})
	}
	return a.send(workbench.KeywordsChanged{Value: next})
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.wb.State()
	page := st.PagedView()

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor < len(page)-1 {
			a.cursor++
		}
		return a, nil
	case " ":
		if a.cursor >= len(page) {
			return a, nil
		}
		return a.send(workbench.SelectionChanged{Records: toggleRecord(st.Selection, page[a.cursor])})
	case "a":
		if len(page) == 0 {
			return a, nil
		}
		return a.send(workbench.SelectionChanged{Records: togglePage(st.Selection, page)})
	case "f":
		if !st.HasSearchResults() {
			return a, nil
		}
		a.filtering = true
		return a, nil
	case "x":
		return a.send(workbench.ClearFiltersRequested{})
	case "s":
		return a.send(workbench.SortRequested{Field: nextSortField(st), Direction: workbench.Ascending})
	case "S":
		return a.send(workbench.SortRequested{Field: st.Sort.Field, Direction: st.Sort.Direction.Flip()})
	case "n":
		if st.TotalPages() > 0 && !st.IsLastPage() {
			a.cursor = 0
			return a.send(workbench.PageNavigationRequested{Nav: workbench.NavNext})
		}
	case "p":
		if !st.IsFirstPage() {
			a.cursor = 0
			return a.send(workbench.PageNavigationRequested{Nav: workbench.NavPrevious})
		}
	case "g":
		if st.ShowFirstButton() {
			a.cursor = 0
			return a.send(workbench.PageNavigationRequested{Nav: workbench.NavFirst})
		}
	case "G":
		if st.ShowLastButton() {
			a.cursor = 0
			return a.send(workbench.PageNavigationRequested{Nav: workbench.NavLast})
		}
	case "c":
		if st.Bulk.IsLoading {
			return a, nil
		}
		return a.send(workbench.BulkSubmitRequested{})
	}
	return a, nil
}

// updateFilter edits the filter of the highlighted column. Every edit is
// sent as the full new value.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := workbench.Columns[a.filterCol]
	cur := a.wb.State().Filters.Get(col)

	switch msg.String() {
	case "esc", "enter":
		a.filtering = false
		return a, nil
	case "tab":
		a.filterCol = (a.filterCol + 1) % len(workbench.Columns)
		return a, nil
	case "ctrl+t":
		if col != workbench.ColumnWorkType {
			return a, nil
		}
		return a.send(workbench.ColumnFilterChanged{Column: col, Value: nextTypeOption(cur)})
	}

	if col == workbench.ColumnWorkType {
		return a, nil
	}
	next, ok := editText(cur, msg)
	if !ok {
		return a, nil
	}
	return a.send(workbench.ColumnFilterChanged{Column: col, Value: next})
}

// editText applies a printable key or backspace to s.
func editText(s string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyBackspace:
		r := []rune(s)
		if len(r) == 0 {
			return s, false
		}
		return string(r[:len(r)-1]), true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyRunes:
		if msg.Alt {
			return s, false
		}
		return s + string(msg.Runes), true
	}
	return s, false
}

func toggle(values []string, v string) []string {
	if i := slices.Index(values, v); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}

func toggleRecord(sel workbench.Selection, r domain.JobRecord) []domain.JobRecord {
	recs := sel.Records()
	if sel.Has(r.ID) {
		return slices.DeleteFunc(recs, func(x domain.JobRecord) bool { return x.ID == r.ID })
	}
	return append(recs, r)
}

// togglePage selects every row of page, or clears them when all are selected.
func togglePage(sel workbench.Selection, page []domain.JobRecord) []domain.JobRecord {
	all := true
	for _, r := range page {
		if !sel.Has(r.ID) {
			all = false
			break
		}
	}
	recs := sel.Records()
	if all {
		onPage := make(map[string]bool, len(page))
		for _, r := range page {
			onPage[r.ID] = true
		}
		return slices.DeleteFunc(recs, func(x domain.JobRecord) bool { return onPage[x.ID] })
	}
	for _, r := range page {
		if !sel.Has(r.ID) {
			recs = append(recs, r)
		}
	}
	return recs
}

func nextSortField(st workbench.State) workbench.Column {
	if !st.Sorted() && st.Sort == workbench.DefaultSort {
		return workbench.Columns[0]
	}
	i := slices.Index(workbench.Columns, st.Sort.Field)
	return workbench.Columns[(i+1)%len(workbench.Columns)]
}

func nextTypeOption(cur string) string {
	opts := workbench.TypeFilterOptions()
	for i, o := range opts {
		if o.Value == cur {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}
