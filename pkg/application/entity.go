package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("job application not found")
	ErrInvalidStatus = errors.New("invalid status: must be one of saved, applied, interviewing, offer, rejected")
)

// Status: стадия отклика на доске.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
)

// Statuses in board order.
var Statuses = []Status{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application описывает отклик на вакансию и ссылки на CV и сопроводительное письмо.
type Application struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"user_id"`
	CVID          *uuid.UUID `json:"cv_id"`
	CoverLetterID *uuid.UUID `json:"cover_letter_id"`
	Company       string     `json:"company"`
	Role          string     `json:"role"`
	JobURL        string     `json:"job_url"`
	Location      string     `json:"location"`
	SalaryRange   string     `json:"salary_range"`
	Status        Status     `json:"status"`
	AppliedAt     *time.Time `json:"applied_date"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Fields: входные данные Create и Update. nil означает "не менять".
type Fields struct {
	CVID          *uuid.UUID `json:"cv_id"`
	CoverLetterID *uuid.UUID `json:"cover_letter_id"`
	Company       *string    `json:"company"`
	Role          *string    `json:"role"`
	JobURL        *string    `json:"job_url"`
	Location      *string    `json:"location"`
	SalaryRange   *string    `json:"salary_range"`
	Status        *Status    `json:"status"`
	AppliedAt     *time.Time `json:"applied_date"`
	Notes         *string    `json:"notes"`
}

// Stats: число откликов по статусам плюс total.
type Stats map[string]int

// Repository: порт для работы с откликами.
type Repository interface {
	Create(ctx context.Context, a Application) error
	// Возвращают только данные владельца
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Application, error)
	// ListByOwner filters by status unless it is empty.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status Status, limit, offset int) ([]Application, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[Status]int, error)
	// Админ-доступ без фильтра владельца
	GetByIDAny(ctx context.Context, id uuid.UUID) (Application, error)
	ListAll(ctx context.Context, status Status, limit, offset int) ([]Application, error)
	Update(ctx context.Context, a Application) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAny(ctx context.Context, id uuid.UUID) error
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
