// Package database stores job postings in PostgreSQL.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	skills TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	salary_min DOUBLE PRECISION NOT NULL DEFAULT 0,
	salary_max DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ,
	link_to_apply TEXT NOT NULL DEFAULT ''
)`

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	//poolers in transaction mode cannot keep prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		r.db.Close()
	}
	return nil
}

// Add inserts a posting. A zero created_at is stored as NULL.
func (r *Repository) Add(ctx context.Context, job models.JobRecord) error {
	var created *time.Time
	if !job.CreatedAt.IsZero() {
		t := job.CreatedAt.UTC()
		created = &t
	}
	query := `
		INSERT INTO jobs (title, description, skills, location, source, salary_min, salary_max, created_at, link_to_apply)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query, job.Title, job.Description, job.Skills, job.Location, job.Source,
		job.SalaryMin, job.SalaryMax, created, job.LinkToApply)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// List returns every posting in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.JobRecord, error) {
	query := `SELECT title, description, skills, location, source, salary_min, salary_max, created_at, link_to_apply FROM jobs ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.JobRecord{}
	for rows.Next() {
		var (
			job     models.JobRecord
			created *time.Time
		)
		if err := rows.Scan(&job.Title, &job.Description, &job.Skills, &job.Location, &job.Source,
			&job.SalaryMin, &job.SalaryMax, &created, &job.LinkToApply); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if created != nil {
			job.CreatedAt = models.Timestamp{Time: created.UTC()}
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}
