package analyses

import "context"

// Repo defines persistence operations for analyses. The store is
// append-only: results are never updated after creation.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, id string) (Analysis, error)
	ListRecent(ctx context.Context, limit int) ([]Analysis, error)
}
