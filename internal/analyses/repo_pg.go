package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO document_analyses (id, persona, job, results, created_at)
VALUES ($1, $2, $3, $4, $5)`

	payload, err := marshalResults(analysis.Results)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.Persona,
		analysis.Job,
		payload,
		analysis.Timestamp,
	)
	return err
}

// GetByID returns an analysis by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	const query = `
SELECT id, persona, job, results, created_at
FROM document_analyses
WHERE id = $1
LIMIT 1`

	var a Analysis
	var results []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Persona,
		&a.Job,
		&results,
		&a.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if err := unmarshalResults(results, &a); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// ListRecent returns up to limit analyses ordered newest-first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	const query = `
SELECT id, persona, job, results, created_at
FROM document_analyses
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		var a Analysis
		var results []byte
		if err := rows.Scan(&a.ID, &a.Persona, &a.Job, &results, &a.Timestamp); err != nil {
			return nil, err
		}
		if err := unmarshalResults(results, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

func marshalResults(results []DocumentSection) ([]byte, error) {
	if results == nil {
		results = []DocumentSection{}
	}
	return json.Marshal(results)
}

func unmarshalResults(raw []byte, a *Analysis) error {
	a.Results = []DocumentSection{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &a.Results)
}
