package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/coverletter"
	"github.com/artem13815/cvstudio/pkg/cv"
)

// UseCase: трекинг откликов. Пользователь видит только свои отклики,
// администратор любые; статистика всегда по своим.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, in Fields) (Application, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Application, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, status string, limit, offset int) ([]Application, error)
	Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in Fields) (Application, error)
	SetStatus(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, status string) (Application, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
	Stats(ctx context.Context, actorID uuid.UUID) (Stats, error)
}

type service struct {
	repo    Repository
	cvs     cv.UseCase
	letters coverletter.UseCase
	now     func() time.Time
}

func NewService(repo Repository, cvs cv.UseCase, letters coverletter.UseCase) UseCase {
	return &service{
		repo:    repo,
		cvs:     cvs,
		letters: letters,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, in Fields) (Application, error) {
	a := Application{ID: uuid.New(), OwnerID: actorID, Status: StatusSaved}
	if in.Company == nil || in.Role == nil {
		return Application{}, ErrValidation("company и role обязательны")
	}
	if err := s.apply(ctx, actorID, false, &a, in); err != nil {
		return Application{}, err
	}
	a.CreatedAt = a.UpdatedAt
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) load(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Application, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (Application, error) {
	return s.load(ctx, actorID, isAdmin, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, status string, limit, offset int) ([]Application, error) {
	st := Status(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, ErrInvalidStatus
	}
	if isAdmin {
		return s.repo.ListAll(ctx, st, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, st, limit, offset)
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in Fields) (Application, error) {
	a, err := s.load(ctx, actorID, isAdmin, id)
	if err != nil {
		return Application{}, err
	}
	if err := s.apply(ctx, actorID, isAdmin, &a, in); err != nil {
		return Application{}, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// SetStatus: быстрая смена статуса для канбан-доски.
func (s *service) SetStatus(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, status string) (Application, error) {
	st := Status(strings.TrimSpace(status))
	if !st.Valid() {
		return Application{}, ErrInvalidStatus
	}
	return s.Update(ctx, actorID, isAdmin, id, Fields{Status: &st})
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return s.repo.DeleteAny(ctx, id)
	}
	return s.repo.DeleteForOwner(ctx, actorID, id)
}

func (s *service) Stats(ctx context.Context, actorID uuid.UUID) (Stats, error) {
	counts, err := s.repo.CountByStatus(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := Stats{"total": 0}
	for _, st := range Statuses {
		out[string(st)] = counts[st]
		out["total"] += counts[st]
	}
	return out, nil
}

// apply copies the set fields onto a, validates them and stamps UpdatedAt.
// Moving to applied without a date records the current time.
func (s *service) apply(ctx context.Context, actorID uuid.UUID, isAdmin bool, a *Application, in Fields) error {
	if in.Company != nil {
		a.Company = strings.TrimSpace(*in.Company)
		if a.Company == "" {
			return ErrValidation("company не может быть пустым")
		}
	}
	if in.Role != nil {
		a.Role = strings.TrimSpace(*in.Role)
		if a.Role == "" {
			return ErrValidation("role не может быть пустым")
		}
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return ErrInvalidStatus
		}
		a.Status = *in.Status
	}
	if in.CVID != nil {
		if _, err := s.cvs.Get(ctx, actorID, isAdmin, *in.CVID); err != nil {
			if errors.Is(err, cv.ErrNotFound) {
				return ErrValidation("cv_id: CV не найдено")
			}
			return err
		}
		a.CVID = in.CVID
	}
	if in.CoverLetterID != nil {
		if _, err := s.letters.Get(ctx, actorID, isAdmin, *in.CoverLetterID); err != nil {
			if errors.Is(err, coverletter.ErrNotFound) {
				return ErrValidation("cover_letter_id: письмо не найдено")
			}
			return err
		}
		a.CoverLetterID = in.CoverLetterID
	}
	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&a.JobURL, in.JobURL},
		{&a.Location, in.Location},
		{&a.SalaryRange, in.SalaryRange},
		{&a.Notes, in.Notes},
	} {
		if f.src != nil {
			*f.dst = strings.TrimSpace(*f.src)
		}
	}

	now := s.now()
	if in.AppliedAt != nil {
		t := in.AppliedAt.UTC()
		a.AppliedAt = &t
	}
	if a.Status == StatusApplied && a.AppliedAt == nil {
		a.AppliedAt = &now
	}
	a.UpdatedAt = now
	return nil
}
