package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvstudio/pkg/application"
)

var _ application.Repository = (*ApplicationRepository)(nil)

// ApplicationRepository хранит отклики на вакансии.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationColumns = `id, owner_id, cv_id, cover_letter_id, company, role, job_url, location, salary_range,
	status, applied_at, notes, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_applications (`+applicationColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, a.ID, a.OwnerID, a.CVID, a.CoverLetterID, a.Company, a.Role, a.JobURL, a.Location, a.SalaryRange,
		string(a.Status), a.AppliedAt, a.Notes, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *ApplicationRepository) Update(ctx context.Context, a application.Application) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE job_applications SET cv_id = $2, cover_letter_id = $3, company = $4, role = $5, job_url = $6,
	location = $7, salary_range = $8, status = $9, applied_at = $10, notes = $11, updated_at = $12
WHERE id = $1
`, a.ID, a.CVID, a.CoverLetterID, a.Company, a.Role, a.JobURL, a.Location, a.SalaryRange,
		string(a.Status), a.AppliedAt, a.Notes, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, `
SELECT `+applicationColumns+` FROM job_applications WHERE id = $1 AND owner_id = $2
`, id, ownerID))
}

// Admin: без фильтра владельца
func (r *ApplicationRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, `
SELECT `+applicationColumns+` FROM job_applications WHERE id = $1
`, id))
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status application.Status, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `
SELECT `+applicationColumns+`
FROM job_applications
WHERE ($3 = '' OR status = $3) AND owner_id = $4
ORDER BY updated_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, string(status), ownerID)
}

func (r *ApplicationRepository) ListAll(ctx context.Context, status application.Status, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `
SELECT `+applicationColumns+`
FROM job_applications
WHERE ($3 = '' OR status = $3)
ORDER BY updated_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, string(status))
}

func (r *ApplicationRepository) list(ctx context.Context, query string, limit, offset int, extra ...any) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, query, append([]any{limit, offset}, extra...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []application.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[application.Status]int, error) {
	rows, err := r.pool.Query(ctx, `
SELECT status, COUNT(*) FROM job_applications WHERE owner_id = $1 GROUP BY status
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[application.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *ApplicationRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_applications WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.OwnerID, &a.CVID, &a.CoverLetterID, &a.Company, &a.Role, &a.JobURL, &a.Location,
		&a.SalaryRange, &status, &a.AppliedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	if a.AppliedAt != nil {
		t := a.AppliedAt.UTC()
		a.AppliedAt = &t
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
