package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type JobInsert struct {
	Company     string
	Title       string
	Salary      string
	Location    string
	WorkType    string
	Source      string
	URL         string
	Description string
	Score       int
	TagsJSON    string // "[]"
	Date        string
	SourceID    string
}

// InsertJobIgnore inserts j unless a job with the same source_id exists.
func InsertJobIgnore(ctx context.Context, db *sql.DB, j JobInsert) (added bool, err error) {
	if j.TagsJSON == "" {
		j.TagsJSON = "[]"
	}
	if j.Date == "" {
		j.Date = time.Now().UTC().Format(time.RFC3339)
	}
	// relies on unique index on source_id WHERE source_id != ''
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (company, title, salary, location, work_type, source, url, description, score, tags, date, source_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		j.Company, j.Title, j.Salary, j.Location, j.WorkType, j.Source, j.URL, j.Description, j.Score, j.TagsJSON, j.Date, j.SourceID,
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}
	return n > 0, nil
}
