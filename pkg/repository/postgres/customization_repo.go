package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvstudio/pkg/customization"
)

var _ customization.Repository = (*CustomizationRepository)(nil)

// CustomizationRepository хранит результаты сравнения с вакансией и рекомендации.
type CustomizationRepository struct {
	pool *pgxpool.Pool
}

func NewCustomizationRepository(pool *pgxpool.Pool) *CustomizationRepository {
	return &CustomizationRepository{pool: pool}
}

const suggestionColumns = `id, cv_id, customization_id, title, description, suggestion_text, section,
	suggestion_data, source, is_applied, created_at, updated_at`

func (r *CustomizationRepository) Create(ctx context.Context, c customization.Customization) (customization.Customization, error) {
	matched, err := json.Marshal(nonNil(c.MatchedKeywords))
	if err != nil {
		return customization.Customization{}, err
	}
	missing, err := json.Marshal(nonNil(c.MissingKeywords))
	if err != nil {
		return customization.Customization{}, err
	}
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
INSERT INTO cv_customizations (id, cv_id, job_description, matched_keywords, missing_keywords, score, ai_powered, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, c.ID, c.CVID, c.JobDescription, matched, missing, c.Score, c.AIPowered, c.CreatedAt); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, s := range c.Suggestions {
			batch.Queue(`
INSERT INTO suggestions (`+suggestionColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`, s.ID, s.CVID, s.CustomizationID, s.Title, s.Description, s.Text, s.Section,
				nullableJSON(s.Data), s.Source, s.Applied, s.CreatedAt, s.UpdatedAt)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return customization.Customization{}, err
	}
	return c, nil
}

func (r *CustomizationRepository) ListSuggestions(ctx context.Context, cvID uuid.UUID, limit, offset int) ([]customization.Suggestion, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+suggestionColumns+`
FROM suggestions WHERE cv_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, cvID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []customization.Suggestion{}
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *CustomizationRepository) GetSuggestion(ctx context.Context, cvID, id uuid.UUID) (customization.Suggestion, error) {
	return scanSuggestion(r.pool.QueryRow(ctx, `
SELECT `+suggestionColumns+`
FROM suggestions WHERE cv_id = $1 AND id = $2
`, cvID, id))
}

func (r *CustomizationRepository) MarkApplied(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE suggestions SET is_applied = TRUE, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return customization.ErrSuggestionNotFound
	}
	return nil
}

func scanSuggestion(row pgx.Row) (customization.Suggestion, error) {
	var s customization.Suggestion
	var data []byte
	if err := row.Scan(&s.ID, &s.CVID, &s.CustomizationID, &s.Title, &s.Description, &s.Text, &s.Section,
		&data, &s.Source, &s.Applied, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customization.Suggestion{}, customization.ErrSuggestionNotFound
		}
		return customization.Suggestion{}, err
	}
	if len(data) > 0 {
		s.Data = data
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

// nullableJSON maps an empty payload to SQL NULL.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
