// Package db provides PostgreSQL storage for analysis history.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Analysis is a stored analysis run with its report.
type Analysis struct {
	ID                  uuid.UUID    `json:"id"`
	ResumeFilename      string       `json:"resume_filename"`
	JobSource           string       `json:"job_source"` // "text" or the vacancy URL
	OverallScorePercent int          `json:"overall_score_percent"`
	Report              types.Report `json:"report"`
	CreatedAt           time.Time    `json:"created_at"`
}

// AnalysisSummary is the listing view of a stored analysis, without the
// full report payload.
type AnalysisSummary struct {
	ID                  uuid.UUID `json:"id"`
	ResumeFilename      string    `json:"resume_filename"`
	JobSource           string    `json:"job_source"`
	OverallScorePercent int       `json:"overall_score_percent"`
	CreatedAt           time.Time `json:"created_at"`
}

// ErrNotFound is returned when the requested analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Connect establishes a connection pool to the database and ensures the
// schema exists.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

func (db *DB) ensureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			resume_filename TEXT NOT NULL,
			job_source TEXT NOT NULL,
			overall_score_percent INT NOT NULL,
			report JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}
	return nil
}

// SaveAnalysis stores a completed analysis and returns its ID.
func (db *DB) SaveAnalysis(ctx context.Context, resumeFilename, jobSource string, report *types.Report) (uuid.UUID, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, resume_filename, job_source, overall_score_percent, report)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, resumeFilename, jobSource, report.OverallScorePercent, reportJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves a stored analysis by ID.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var reportJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_filename, job_source, overall_score_percent, report, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.ResumeFilename, &a.JobSource, &a.OverallScorePercent, &reportJSON, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := json.Unmarshal(reportJSON, &a.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
	}
	return &a, nil
}

// ListAnalyses returns the most recent analyses, newest first.
func (db *DB) ListAnalyses(ctx context.Context, limit int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_filename, job_source, overall_score_percent, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]AnalysisSummary, 0, limit)
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.ResumeFilename, &s.JobSource, &s.OverallScorePercent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analysis rows: %w", err)
	}
	return summaries, nil
}
