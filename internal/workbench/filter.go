package workbench

import (
	"strings"

	"jobhunt-workbench/internal/domain"
)

// Column names a JobRecord field usable for filtering and sorting.
type Column string

const (
	ColumnTitle    Column = "title"
	ColumnSalary   Column = "salary"
	ColumnCompany  Column = "company"
	ColumnLocation Column = "location"
	ColumnWorkType Column = "workType"
	ColumnSource   Column = "source"
)

// Columns lists the table columns in display order.
var Columns = []Column{ColumnTitle, ColumnSalary, ColumnCompany, ColumnLocation, ColumnWorkType, ColumnSource}

var columnLabels = map[Column]string{
	ColumnTitle:    "Title",
	ColumnSalary:   "Salary",
	ColumnCompany:  "Company",
	ColumnLocation: "Location",
	ColumnWorkType: "Type",
	ColumnSource:   "Source",
}

func (c Column) Label() string {
	if l, ok := columnLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Column) valid() bool {
	_, ok := columnLabels[c]
	return ok
}

// Value returns the field of r that c names.
func (c Column) Value(r domain.JobRecord) string { return fieldValue(r, c) }

func fieldValue(r domain.JobRecord, c Column) string {
	switch c {
	case ColumnTitle:
		return r.Title
	case ColumnSalary:
		return r.Salary
	case ColumnCompany:
		return r.Company
	case ColumnLocation:
		return r.Location
	case ColumnWorkType:
		return r.WorkType
	case ColumnSource:
		return r.Source
	default:
		return ""
	}
}

// FilterState holds one predicate value per column. Empty means no
// constraint on that column.
type FilterState struct {
	Title    string
	Salary   string
	Company  string
	Location string
	WorkType string
	Source   string
}

func (f FilterState) Get(c Column) string {
	switch c {
	case ColumnTitle:
		return f.Title
	case ColumnSalary:
		return f.Salary
	case ColumnCompany:
		return f.Company
	case ColumnLocation:
		return f.Location
	case ColumnWorkType:
		return f.WorkType
	case ColumnSource:
		return f.Source
	default:
		return ""
	}
}

// With returns a copy of f with column c set to v. ok is false for an
// unknown column, in which case f is returned unchanged.
func (f FilterState) With(c Column, v string) (FilterState, bool) {
	switch c {
	case ColumnTitle:
		f.Title = v
	case ColumnSalary:
		f.Salary = v
	case ColumnCompany:
		f.Company = v
	case ColumnLocation:
		f.Location = v
	case ColumnWorkType:
		f.WorkType = v
	case ColumnSource:
		f.Source = v
	default:
		return f, false
	}
	return f, true
}

func (f FilterState) IsZero() bool { return f == FilterState{} }

// ApplyFilters returns the records of base matching every active predicate,
// in base order. base is never modified.
func ApplyFilters(base []domain.JobRecord, f FilterState) []domain.JobRecord {
	out := make([]domain.JobRecord, 0, len(base))
	for _, r := range base {
		if matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r domain.JobRecord, f FilterState) bool {
	for _, c := range Columns {
		want := f.Get(c)
		if want == "" {
			continue
		}
		got := fieldValue(r, c)
		if c == ColumnWorkType {
			if got != want {
				return false
			}
			continue
		}
		// a record without the field never satisfies an active predicate
		if got == "" || !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// TypeFilterOption is one entry of the work-type column filter picker.
type TypeFilterOption struct {
	Label string
	Value string
}

// TypeFilterOptions returns the work-type filter choices, "All Types" first.
func TypeFilterOptions() []TypeFilterOption {
	return []TypeFilterOption{
		{Label: "All Types", Value: ""},
		{Label: "Remote", Value: domain.WorkTypeRemote},
		{Label: "Onsite", Value: domain.WorkTypeOnsite},
		{Label: "Hybrid", Value: domain.WorkTypeHybrid},
	}
}
