package domain

import (
	"strings"
	"time"
)

// WorkType values accepted by search criteria and the work-type column filter.
const (
	WorkTypeRemote = "remote"
	WorkTypeOnsite = "onsite"
	WorkTypeHybrid = "hybrid"
)

// WorkTypes lists the enumerated work types in display order.
var WorkTypes = []string{WorkTypeRemote, WorkTypeOnsite, WorkTypeHybrid}

// JobRecord is one search result row. ID is unique within a response and is
// the selection and table key.
type JobRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Salary   string `json:"salary"`
	Company  string `json:"company"`
	Location string `json:"location"`
	WorkType string `json:"workType"`
	Source   string `json:"source"`
}

// SearchCriteria is the request body of the remote search operation.
type SearchCriteria struct {
	Keywords  string   `json:"keywords"`
	Location  string   `json:"location"`
	WorkTypes []string `json:"workTypes"`
}

// Board is an option returned by the board lookup.
type Board struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// JobLead is a posting as seen by an ingest source, before scoring and storage.
type JobLead struct {
	CompanyName     string
	Title           string
	URL             string
	LocationRaw     string
	Salary          string
	WorkType        string // remote/hybrid/onsite or empty
	ATSJobID        string
	Description     string
	PostedAt        *time.Time
	FirstSeenSource string // greenhouse/lever
}

// NormalizeWorkType maps free text onto the WorkType enum. Unknown input
// yields "".
func NormalizeWorkType(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	switch {
	case strings.Contains(m, "remote"):
		return WorkTypeRemote
	case strings.Contains(m, "hybrid"):
		return WorkTypeHybrid
	case strings.Contains(m, "on-site"), strings.Contains(m, "onsite"), strings.Contains(m, "on site"), strings.Contains(m, "office"):
		return WorkTypeOnsite
	default:
		return ""
	}
}

// IsWorkType reports whether v is one of the enumerated work types.
func IsWorkType(v string) bool {
	for _, w := range WorkTypes {
		if w == v {
			return true
		}
	}
	return false
}
