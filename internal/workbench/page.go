package workbench

import "jobhunt-workbench/internal/domain"

// PageSize is fixed.
const PageSize = 10

// PageNav is a paging command.
type PageNav int

const (
	NavFirst PageNav = iota
	NavPrevious
	NavNext
	NavLast
)

func (n PageNav) String() string {
	switch n {
	case NavFirst:
		return "first"
	case NavPrevious:
		return "previous"
	case NavNext:
		return "next"
	case NavLast:
		return "last"
	default:
		return "unknown"
	}
}

// TotalPages is ceil(n/PageSize); zero records means zero pages.
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Navigate applies nav to page. The result is always within
// [1, max(1, totalPages)].
func Navigate(page, totalPages int, nav PageNav) int {
	switch nav {
	case NavFirst:
		page = 1
	case NavPrevious:
		if page > 1 {
			page--
		}
	case NavNext:
		if page < totalPages {
			page++
		}
	case NavLast:
		page = totalPages
	}
	return clampPage(page, totalPages)
}

func clampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window returns the records of page (1-based) within view.
func Window(view []domain.JobRecord, page int) []domain.JobRecord {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(view) {
		return []domain.JobRecord{}
	}
	end := start + PageSize
	if end > len(view) {
		end = len(view)
	}
	return view[start:end:end]
}
