package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/auth"
)

var (
	ErrForbidden  = errors.New("superuser access required")
	ErrSelfAction = errors.New("cannot remove your own superuser access or delete your own account")
)

// UserSummary: пользователь с числом его CV для админ-панели.
type UserSummary struct {
	auth.User
	CVCount int `json:"cv_count"`
}

// UserPatch: флаги доступа; nil означает "не менять".
type UserPatch struct {
	IsActive *bool `json:"is_active"`
	IsAdmin  *bool `json:"is_superuser"`
}

// Stats: сводка для админ-панели.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	InactiveUsers int `json:"inactive_users"`
	TotalCVs      int `json:"total_cvs"`
}

// Repository: порт к пользователям без фильтра владельца.
type Repository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]UserSummary, error)
	GetUser(ctx context.Context, id uuid.UUID) (UserSummary, error)
	SetFlags(ctx context.Context, id uuid.UUID, isActive, isAdmin bool) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
}

// UseCase: управление пользователями. Любой вызов не от администратора
// возвращает ErrForbidden.
type UseCase interface {
	ListUsers(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]UserSummary, error)
	UpdateUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, patch UserPatch) (UserSummary, error)
	DeleteUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
	Stats(ctx context.Context, actorID uuid.UUID, isAdmin bool) (Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) ListUsers(ctx context.Context, _ uuid.UUID, isAdmin bool, limit, offset int) ([]UserSummary, error) {
	if !isAdmin {
		return nil, ErrForbidden
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

func (s *service) UpdateUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, patch UserPatch) (UserSummary, error) {
	if !isAdmin {
		return UserSummary{}, ErrForbidden
	}
	// администратор не может снять права сам с себя
	if id == actorID && patch.IsAdmin != nil && !*patch.IsAdmin {
		return UserSummary{}, ErrSelfAction
	}
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return UserSummary{}, err
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}
	if err := s.repo.SetFlags(ctx, id, u.IsActive, u.IsAdmin); err != nil {
		return UserSummary{}, err
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if !isAdmin {
		return ErrForbidden
	}
	if id == actorID {
		return ErrSelfAction
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *service) Stats(ctx context.Context, _ uuid.UUID, isAdmin bool) (Stats, error) {
	if !isAdmin {
		return Stats{}, ErrForbidden
	}
	return s.repo.Stats(ctx)
}
