package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"jobhunt-workbench/internal/domain"
)

func Migrate(db *sql.DB) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  title TEXT NOT NULL,
  salary TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  work_type TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  score INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT '[]',
  date TEXT NOT NULL,
  source_id TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  job_id TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  work_type TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_date
ON jobs(date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_source_id
ON jobs(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_applications_created
ON applications(created_at);
`); err != nil {
		return err
	}

	// Dev databases created before salary/source existed.
	for _, col := range []string{"salary", "source", "description"} {
		if !columnExists(tx, "jobs", col) {
			if _, err := tx.Exec(fmt.Sprintf(`ALTER TABLE jobs ADD COLUMN %s TEXT NOT NULL DEFAULT '';`, col)); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func columnExists(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, table, col string) bool {
	query := fmt.Sprintf(`
SELECT 1
FROM pragma_table_info('%s')
WHERE name = ?
LIMIT 1;
`, table)

	var one int
	err := q.QueryRow(query, col).Scan(&one)
	return err == nil
}

// SearchJobs returns jobs matching every keyword token (in title, company or
// description), the location substring and any of the work types. Best
// scored and newest come first. limit <= 0 means no limit.
func SearchJobs(ctx context.Context, db *sql.DB, c domain.SearchCriteria, limit int) ([]domain.JobRecord, error) {
	var (
		where []string
		args  []any
	)

	for _, tok := range strings.Fields(strings.ToLower(c.Keywords)) {
		p := likeArg(tok)
		where = append(where, `(lower(title) LIKE ? ESCAPE '\' OR lower(company) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p)
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		where = append(where, `lower(location) LIKE ? ESCAPE '\'`)
		args = append(args, likeArg(strings.ToLower(loc)))
	}

	var types []string
	for _, wt := range c.WorkTypes {
		if wt = domain.NormalizeWorkType(wt); wt != "" {
			types = append(types, wt)
		}
	}
	if len(types) > 0 {
		where = append(where, "work_type IN ("+strings.TrimSuffix(strings.Repeat("?,", len(types)), ",")+")")
		for _, t := range types {
			args = append(args, t)
		}
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT id, title, salary, company, location, work_type, source
FROM jobs
%s
ORDER BY score DESC, date DESC, id ASC
LIMIT ?;
`, clause)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	out := []domain.JobRecord{}
	for rows.Next() {
		var (
			id int64
			j  domain.JobRecord
		)
		if err := rows.Scan(&id, &j.Title, &j.Salary, &j.Company, &j.Location, &j.WorkType, &j.Source); err != nil {
			return nil, err
		}
		j.ID = strconv.FormatInt(id, 10)
		out = append(out, j)
	}
	return out, rows.Err()
}

func likeArg(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// CountJobsByCompany returns stored job counts for one source keyed by
// lower-cased company name.
func CountJobsByCompany(ctx context.Context, db *sql.DB, source string) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `
SELECT lower(company), COUNT(*)
FROM jobs
WHERE lower(source) = lower(?)
GROUP BY lower(company);
`, source)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			company string
			n       int
		)
		if err := rows.Scan(&company, &n); err != nil {
			return nil, err
		}
		out[company] = n
	}
	return out, rows.Err()
}

func CleanupOldJobs(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM jobs
WHERE date < strftime('%Y-%m-%dT%H:%M:%SZ', 'now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
