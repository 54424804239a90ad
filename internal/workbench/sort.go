package workbench

import (
	"slices"
	"strings"

	"jobhunt-workbench/internal/domain"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortSpec is the active sort key. It also drives the sort indicator.
type SortSpec struct {
	Field     Column
	Direction Direction
}

// DefaultSort is the indicator shown before the user sorts anything.
var DefaultSort = SortSpec{Field: ColumnTitle, Direction: Ascending}

// SortRecords returns a stably sorted copy of view. Values are compared as
// lower-cased strings; a missing field sorts as "". Equal keys keep their
// relative order in both directions.
func SortRecords(view []domain.JobRecord, field Column, dir Direction) []domain.JobRecord {
	out := slices.Clone(view)
	if out == nil {
		out = []domain.JobRecord{}
	}
	slices.SortStableFunc(out, func(a, b domain.JobRecord) int {
		c := strings.Compare(
			strings.ToLower(fieldValue(a, field)),
			strings.ToLower(fieldValue(b, field)),
		)
		if dir == Descending {
			return -c
		}
		return c
	})
	return out
}
