package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvstudio/pkg/admin"
	"github.com/artem13815/cvstudio/pkg/auth"
)

var (
	_ auth.UserRepository = (*UserRepository)(nil)
	_ admin.Repository    = (*UserRepository)(nil)
)

const uniqueViolation = "23505"

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, is_active, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.IsActive, user.IsAdmin, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, is_active, is_admin, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, is_active, is_admin, created_at
		FROM users WHERE id = $1
	`, id))
}

func scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsActive, &user.IsAdmin, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

const userSummarySelect = `
SELECT u.id, u.name, u.email, u.password_hash, u.is_active, u.is_admin, u.created_at,
	(SELECT COUNT(*) FROM cvs c WHERE c.owner_id = u.id) AS cv_count
FROM users u`

// ListUsers: все пользователи с числом CV, новые первыми.
func (r *UserRepository) ListUsers(ctx context.Context, limit, offset int) ([]admin.UserSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, userSummarySelect+`
ORDER BY u.created_at DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []admin.UserSummary{}
	for rows.Next() {
		u, err := scanUserSummary(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (admin.UserSummary, error) {
	return scanUserSummary(r.pool.QueryRow(ctx, userSummarySelect+` WHERE u.id = $1`, id))
}

func (r *UserRepository) SetFlags(ctx context.Context, id uuid.UUID, isActive, isAdmin bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $2, is_admin = $3 WHERE id = $1`, id, isActive, isAdmin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

// DeleteUser удаляет пользователя; CV, письма и отклики уходят каскадом.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Stats(ctx context.Context) (admin.Stats, error) {
	var st admin.Stats
	err := r.pool.QueryRow(ctx, `
SELECT
	(SELECT COUNT(*) FROM users),
	(SELECT COUNT(*) FROM users WHERE is_active),
	(SELECT COUNT(*) FROM cvs)
`).Scan(&st.TotalUsers, &st.ActiveUsers, &st.TotalCVs)
	if err != nil {
		return admin.Stats{}, err
	}
	st.InactiveUsers = st.TotalUsers - st.ActiveUsers
	return st, nil
}

func scanUserSummary(row pgx.Row) (admin.UserSummary, error) {
	var u admin.UserSummary
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin, &u.CreatedAt, &u.CVCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.UserSummary{}, auth.ErrNotFound
		}
		return admin.UserSummary{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
