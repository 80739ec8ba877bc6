package repository

import (
	"context"
	"fmt"
	"time"

	"listinggen/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Generation outcomes
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeProviderError   = "provider_error"
)

// GenerationEvent is one submission attempt. The generated text is never stored.
type GenerationEvent struct {
	ID          string
	Form        model.FormInput
	Prompt      string
	Outcome     string
	ErrorDetail string
	LatencyMs   int64
	CreatedAt   time.Time
}

// GenerationLogger records submission attempts
type GenerationLogger interface {
	LogGeneration(ctx context.Context, event *GenerationEvent) error
}

// generationRow is the database shape of a GenerationEvent
type generationRow struct {
	ID            string         `db:"id"`
	PropertyType  string         `db:"property_type"`
	Stories       string         `db:"stories"`
	SquareFootage string         `db:"square_footage"`
	GarageCount   string         `db:"garage_count"`
	Bedrooms      string         `db:"bedrooms"`
	Bathrooms     string         `db:"bathrooms"`
	Amenities     pq.StringArray `db:"amenities"`
	Prompt        string         `db:"prompt"`
	Outcome       string         `db:"outcome"`
	ErrorDetail   string         `db:"error_detail"`
	LatencyMs     int64          `db:"latency_ms"`
	CreatedAt     time.Time      `db:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS generation_events (
	id             UUID PRIMARY KEY,
	property_type  TEXT NOT NULL DEFAULT '',
	stories        TEXT NOT NULL DEFAULT '',
	square_footage TEXT NOT NULL DEFAULT '',
	garage_count   TEXT NOT NULL DEFAULT '',
	bedrooms       TEXT NOT NULL DEFAULT '',
	bathrooms      TEXT NOT NULL DEFAULT '',
	amenities      TEXT[] NOT NULL DEFAULT '{}',
	prompt         TEXT NOT NULL DEFAULT '',
	outcome        TEXT NOT NULL,
	error_detail   TEXT NOT NULL DEFAULT '',
	latency_ms     BIGINT NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_generation_events_created_at ON generation_events (created_at DESC);
`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the generation_events table if needed
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// LogGeneration inserts one generation event
func (r *PostgresRepository) LogGeneration(ctx context.Context, event *GenerationEvent) error {
	row := toRow(event)

	query := `
		INSERT INTO generation_events (
			id, property_type, stories, square_footage, garage_count, bedrooms, bathrooms,
			amenities, prompt, outcome, error_detail, latency_ms, created_at
		) VALUES (
			:id, :property_type, :stories, :square_footage, :garage_count, :bedrooms, :bathrooms,
			:amenities, :prompt, :outcome, :error_detail, :latency_ms, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to log generation: %w", err)
	}
	return nil
}

// CountByOutcome returns how many events were recorded per outcome
func (r *PostgresRepository) CountByOutcome(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Outcome string `db:"outcome"`
		Count   int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT outcome, COUNT(*) AS count FROM generation_events GROUP BY outcome`); err != nil {
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Outcome] = row.Count
	}
	return counts, nil
}

func toRow(event *GenerationEvent) generationRow {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	amenities := event.Form.Amenities.Keys()
	if amenities == nil {
		amenities = []string{}
	}
	return generationRow{
		ID:            event.ID,
		PropertyType:  string(event.Form.PropertyType),
		Stories:       event.Form.Stories,
		SquareFootage: event.Form.SquareFootage,
		GarageCount:   event.Form.GarageCount,
		Bedrooms:      event.Form.Bedrooms,
		Bathrooms:     event.Form.Bathrooms,
		Amenities:     pq.StringArray(amenities),
		Prompt:        event.Prompt,
		Outcome:       event.Outcome,
		ErrorDetail:   event.ErrorDetail,
		LatencyMs:     event.LatencyMs,
		CreatedAt:     createdAt,
	}
}
