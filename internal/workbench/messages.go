package workbench

import "jobhunt-workbench/internal/domain"

// Commands sent by the view layer. Each interaction maps to exactly one type.
type (
	KeywordsChanged  struct{ Value string }
	LocationChanged  struct{ Value string }
	WorkTypesChanged struct{ Values []string }
	SearchRequested  struct{}

	ColumnFilterChanged struct {
		Column Column
		Value  string
	}
	ClearFiltersRequested struct{}

	SortRequested struct {
		Field     Column
		Direction Direction
	}

	PageNavigationRequested struct{ Nav PageNav }

	// SelectionChanged carries the complete new selection, not a delta.
	SelectionChanged struct{ Records []domain.JobRecord }

	BulkSubmitRequested struct{}
)

// Results of remote calls, delivered back through Update.
type (
	SearchCompleted struct {
		Records []domain.JobRecord
		Err     error
		epoch   uint64
	}

	ApplicationsCreated struct {
		IDs []string
		Err error
	}

	BoardsLoaded struct {
		Boards []domain.Board
		Err    error
	}
)

// NotificationMsg is emitted for every toast the workbench raises.
type NotificationMsg struct{ Notification Notification }
