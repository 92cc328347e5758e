package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested analysis was not found.
var ErrNotFound = errors.New("analysis not found")

// Analysis is a saved portfolio analysis. State holds the full sharecode
// state document so a saved analysis restores exactly what was shared.
type Analysis struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Summary is the listing view of an analysis without its state payload.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository defines persistent storage for analyses.
type Repository interface {
	Save(ctx context.Context, id, name string, state json.RawMessage) error
	Get(ctx context.Context, id string) (*Analysis, error)
	List(ctx context.Context, limit int) ([]Summary, error)
	Delete(ctx context.Context, id string) error
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL analysis repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, id, name string, state json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO analyses (id, name, state)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (id)
		 DO UPDATE SET name = $2, state = $3::jsonb, updated_at = now()`,
		id, name, state)
	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

func (r *PgRepository) Get(ctx context.Context, id string) (*Analysis, error) {
	var a Analysis
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, state, created_at, updated_at
		 FROM analyses
		 WHERE id = $1`, id).Scan(&a.ID, &a.Name, &a.State, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting analysis: %w", err)
	}
	return &a, nil
}

func (r *PgRepository) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at
		 FROM analyses
		 ORDER BY updated_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}
	return summaries, nil
}

func (r *PgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
