package cv

import (
	"context"

	"github.com/google/uuid"
)

// Repository: порт хранения CV и снимков версий.
type Repository interface {
	Create(ctx context.Context, c CV) (CV, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (CV, error)
	GetByIDAny(ctx context.Context, id uuid.UUID) (CV, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]CV, error)
	ListAll(ctx context.Context, limit, offset int) ([]CV, error)
	// Update stores c only if the stored current_version still equals
	// expectedVersion, and appends a snapshot of the new version.
	// A stale write returns ErrConflict.
	Update(ctx context.Context, c CV, expectedVersion int) (CV, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAny(ctx context.Context, id uuid.UUID) error
	ListVersions(ctx context.Context, cvID uuid.UUID, limit, offset int) ([]Version, error)
}

// FileStore keeps uploaded documents and photos.
type FileStore interface {
	// Save writes data under key and returns the path to record on the CV.
	Save(ctx context.Context, key string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}
