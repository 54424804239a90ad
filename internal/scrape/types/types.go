package types

import (
	"context"
	"time"

	"jobhunt-workbench/internal/domain"
)

type ScrapeResult struct {
	Source string
	Leads  []domain.JobLead
}

// Status describes the last ingest pass.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}

type JobRow struct {
	Company     string
	Title       string
	Salary      string
	Location    string
	WorkType    string
	Description string
	URL         string
	Score       int
	Tags        []string
	ReceivedAt  time.Time
	SourceID    string
	Source      string
}
