package devserver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"go-jobboard/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  salary_min REAL NOT NULL DEFAULT 0,
  salary_max REAL NOT NULL DEFAULT 0,
  created_at INTEGER,
  link_to_apply TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create jobs table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Add(ctx context.Context, job models.JobRecord) error {
	var created sql.NullInt64
	if !job.CreatedAt.IsZero() {
		created = sql.NullInt64{Int64: job.CreatedAt.UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (title, description, skills, location, source, salary_min, salary_max, created_at, link_to_apply)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Title,
		job.Description,
		job.Skills,
		job.Location,
		job.Source,
		job.SalaryMin,
		job.SalaryMax,
		created,
		job.LinkToApply,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, description, skills, location, source, salary_min, salary_max, created_at, link_to_apply
       FROM jobs ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := []models.JobRecord{}
	for rows.Next() {
		var (
			job     models.JobRecord
			created sql.NullInt64
		)
		if err := rows.Scan(&job.Title, &job.Description, &job.Skills, &job.Location, &job.Source,
			&job.SalaryMin, &job.SalaryMax, &created, &job.LinkToApply); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if created.Valid {
			job.CreatedAt = models.Timestamp{Time: time.UnixMilli(created.Int64).UTC()}
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return out, nil
}
