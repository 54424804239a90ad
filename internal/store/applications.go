package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobhunt-workbench/internal/domain"
)

// ErrNoJobs is returned when an application batch is empty.
var ErrNoJobs = errors.New("no jobs to create applications for")

const StatusNew = "new"

// CreateApplications stores one application per record in a single
// transaction and returns the new ids in input order.
func CreateApplications(ctx context.Context, db *sql.DB, jobs []domain.JobRecord) ([]string, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO applications (id, job_id, title, company, location, work_type, salary, source, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, fmt.Errorf("prepare application insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		id := uuid.NewString()
		if _, err := stmt.ExecContext(ctx, id, j.ID, j.Title, j.Company, j.Location, j.WorkType, j.Salary, j.Source, StatusNew, now); err != nil {
			return nil, fmt.Errorf("insert application for job %s: %w", j.ID, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListApplications returns the newest applications first.
func ListApplications(ctx context.Context, db *sql.DB, limit int) ([]domain.Application, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, job_id, title, company, status, created_at
FROM applications
ORDER BY created_at DESC, rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := []domain.Application{}
	for rows.Next() {
		var (
			a       domain.Application
			created string
		)
		if err := rows.Scan(&a.ID, &a.JobID, &a.Title, &a.Company, &a.Status, &created); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, a)
	}
	return out, rows.Err()
}
