package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvstudio/pkg/coverletter"
)

var _ coverletter.Repository = (*CoverLetterRepository)(nil)

// CoverLetterRepository хранит сопроводительные письма (content в JSONB).
type CoverLetterRepository struct {
	pool *pgxpool.Pool
}

func NewCoverLetterRepository(pool *pgxpool.Pool) *CoverLetterRepository {
	return &CoverLetterRepository{pool: pool}
}

const coverLetterColumns = `id, owner_id, cv_id, title, content, created_at, updated_at`

func (r *CoverLetterRepository) Create(ctx context.Context, l coverletter.CoverLetter) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO cover_letters (`+coverLetterColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, l.ID, l.OwnerID, l.CVID, l.Title, jsonObject(l.Content), l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *CoverLetterRepository) Update(ctx context.Context, l coverletter.CoverLetter) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE cover_letters SET cv_id = $2, title = $3, content = $4, updated_at = $5 WHERE id = $1
`, l.ID, l.CVID, l.Title, jsonObject(l.Content), l.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return coverletter.ErrNotFound
	}
	return nil
}

func (r *CoverLetterRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (coverletter.CoverLetter, error) {
	return scanCoverLetter(r.pool.QueryRow(ctx, `
SELECT `+coverLetterColumns+` FROM cover_letters WHERE id = $1 AND owner_id = $2
`, id, ownerID))
}

func (r *CoverLetterRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (coverletter.CoverLetter, error) {
	return scanCoverLetter(r.pool.QueryRow(ctx, `SELECT `+coverLetterColumns+` FROM cover_letters WHERE id = $1`, id))
}

func (r *CoverLetterRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]coverletter.CoverLetter, error) {
	return r.list(ctx, `
SELECT `+coverLetterColumns+` FROM cover_letters WHERE owner_id = $3 ORDER BY updated_at DESC LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
}

func (r *CoverLetterRepository) ListAll(ctx context.Context, limit, offset int) ([]coverletter.CoverLetter, error) {
	return r.list(ctx, `
SELECT `+coverLetterColumns+` FROM cover_letters ORDER BY updated_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
}

func (r *CoverLetterRepository) list(ctx context.Context, query string, limit, offset int, extra ...any) ([]coverletter.CoverLetter, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, query, append([]any{limit, offset}, extra...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []coverletter.CoverLetter{}
	for rows.Next() {
		l, err := scanCoverLetter(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *CoverLetterRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cover_letters WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return coverletter.ErrNotFound
	}
	return nil
}

func (r *CoverLetterRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cover_letters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return coverletter.ErrNotFound
	}
	return nil
}

func scanCoverLetter(row pgx.Row) (coverletter.CoverLetter, error) {
	var (
		l       coverletter.CoverLetter
		content []byte
	)
	if err := row.Scan(&l.ID, &l.OwnerID, &l.CVID, &l.Title, &content, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return coverletter.CoverLetter{}, coverletter.ErrNotFound
		}
		return coverletter.CoverLetter{}, err
	}
	l.Content = jsonObject(content)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}

// jsonObject maps an empty payload to {} so the column keeps its shape.
func jsonObject(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte(`{}`)
	}
	return raw
}
