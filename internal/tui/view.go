package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/workbench"
)

var columnWidths = map[workbench.Column]int{
	workbench.ColumnTitle:    28,
	workbench.ColumnSalary:   20,
	workbench.ColumnCompany:  18,
	workbench.ColumnLocation: 20,
	workbench.ColumnWorkType: 8,
	workbench.ColumnSource:   12,
}

func (a App) View() string {
	st := a.wb.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("JobHunt Workbench"))
	b.WriteString("\n")
	if boards := a.renderBoards(st.Boards); boards != "" {
		b.WriteString(boards)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.renderForm(st))
	b.WriteString("\n\n")

	if line := statusLine(st); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if st.HasSearchResults() {
		b.WriteString(a.renderFilters(st))
		b.WriteString("\n")
		b.WriteString(a.renderTable(st))
		b.WriteString("\n")
		b.WriteString(renderPager(st))
		b.WriteString("\n\n")
		b.WriteString(renderSelection(st))
		b.WriteString("\n")
	}

	if st.Notice != nil {
		b.WriteString("\n")
		b.WriteString(renderToast(*st.Notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(a.helpLine()))
	return b.String()
}

func (a App) renderBoards(boards []domain.Board) string {
	if len(boards) == 0 {
		return ""
	}
	parts := make([]string, 0, len(boards))
	for _, bd := range boards {
		parts = append(parts, fmt.Sprintf("%s (%s)", bd.Label, bd.Description))
	}
	return labelStyle.Render("Boards: ") + strings.Join(parts, ", ")
}

func (a App) renderForm(st workbench.State) string {
	field := func(i int, label, value string) string {
		l := labelStyle.Render(label)
		if a.focus == focusForm && a.field == i {
			l = focusStyle.Render("> " + label)
			value += "_"
		}
		return l + " " + value
	}

	types := make([]string, 0, len(domain.WorkTypes))
	for i, wt := range domain.WorkTypes {
		box := "[ ]"
		for _, sel := range st.WorkTypes {
			if sel == wt {
				box = "[x]"
			}
		}
		item := box + " " + wt
		if a.focus == focusForm && a.field == fieldWorkTypes && a.typeIdx == i {
			item = focusStyle.Render(item)
		}
		types = append(types, item)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		field(fieldKeywords, "Keywords:", st.Keywords),
		field(fieldLocation, "Location:", st.Location),
		field(fieldWorkTypes, "Work type:", strings.Join(types, "  ")),
	)
}

// statusLine is the loading, error or empty-result line.
func statusLine(st workbench.State) string {
	switch {
	case st.Search.IsLoading:
		return infoStyle.Render("Searching...")
	case st.Search.HasError:
		return errorStyle.Render(st.Search.ErrorMessage)
	case st.IsEmpty():
		return dimStyle.Render(workbench.EmptyMessage)
	case st.NoFilteredResults():
		return dimStyle.Render(workbench.NoFilteredResultsMessage)
	}
	return ""
}

func (a App) renderFilters(st workbench.State) string {
	parts := make([]string, 0, len(workbench.Columns))
	for i, col := range workbench.Columns {
		v := st.Filters.Get(col)
		if col == workbench.ColumnWorkType {
			v = typeOptionLabel(v)
		}
		item := col.Label() + "=" + v
		switch {
		case a.filtering && a.filterCol == i:
			item = focusStyle.Render(item + "_")
		case st.Filters.Get(col) == "":
			item = dimStyle.Render(item)
		}
		parts = append(parts, item)
	}
	return labelStyle.Render("Filters: ") + strings.Join(parts, "  ")
}

func typeOptionLabel(v string) string {
	for _, o := range workbench.TypeFilterOptions() {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

func (a App) renderTable(st workbench.State) string {
	cells := make([]string, 0, len(workbench.Columns)+1)
	cells = append(cells, "    ")
	for _, col := range workbench.Columns {
		label := col.Label()
		if st.Sort.Field == col {
			if st.Sort.Direction == workbench.Descending {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		cells = append(cells, cell(label, columnWidths[col]))
	}
	lines := []string{headerStyle.Render(strings.Join(cells, " "))}

	for i, r := range st.PagedView() {
		box := "[ ] "
		if st.Selection.Has(r.ID) {
			box = "[x] "
		}
		row := []string{box}
		for _, col := range workbench.Columns {
			row = append(row, cell(col.Value(r), columnWidths[col]))
		}
		line := strings.Join(row, " ")
		if a.focus == focusResults && i == a.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// cell truncates s to w runes and pads it to exactly w.
func cell(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		s = string(r[:w-1]) + "…"
	}
	return lipgloss.NewStyle().Width(w).Render(s)
}

func renderPager(st workbench.State) string {
	total := st.TotalPages()
	if total == 0 {
		return ""
	}
	var parts []string
	if st.ShowFirstButton() {
		parts = append(parts, "« first (g)")
	}
	if !st.IsFirstPage() {
		parts = append(parts, "‹ prev (p)")
	}
	parts = append(parts, fmt.Sprintf("Page %d of %d", st.Page, total))
	if !st.IsLastPage() {
		parts = append(parts, "next (n) ›")
	}
	if st.ShowLastButton() {
		parts = append(parts, "last (G) »")
	}
	return strings.Join(parts, "  ")
}

func renderSelection(st workbench.State) string {
	label := st.CreateButtonLabel()
	if st.Bulk.IsLoading {
		label = "Creating..."
	}
	btn := disabledStyle.Render(label)
	if st.HasSelection() && !st.Bulk.IsLoading {
		btn = buttonStyle.Render(label)
	}
	if !st.HasSelection() {
		return btn
	}
	return st.SelectionStatus() + "  " + btn
}

func renderToast(n workbench.Notification) string {
	body := lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render(n.Title), n.Message)
	return toastStyle(string(n.Variant)).Render(body)
}

func (a App) helpLine() string {
	switch {
	case a.filtering:
		return "type to filter · tab next column · ctrl+t cycle type · enter/esc done"
	case a.focus == focusForm:
		return "enter search · ↑/↓ field · ←/→ space toggle type · tab results · ctrl+c quit"
	default:
		return "space select · a page · f filter · x clear · s/S sort · n/p/g/G page · c create · tab form · q quit"
	}
}
