package coverletter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("cover letter not found")
	ErrInvalidPayload      = errors.New("invalid cover letter payload")
	ErrEmptyJobDescription = errors.New("job description is required")
)

const (
	defaultTitle   = "My Cover Letter"
	generatedTitle = "AI Generated Cover Letter"
)

// CoverLetter: сопроводительное письмо. Content хранится как JSON объект;
// у сгенерированных писем в нём лежат text и generated_with_ai.
type CoverLetter struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"user_id"`
	CVID      *uuid.UUID      `json:"cv_id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Draft: входные данные Create и Update; пустые поля не меняются.
type Draft struct {
	CVID    *uuid.UUID      `json:"cv_id"`
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
}

// GenerateRequest: запрос на генерацию письма по CV и вакансии.
type GenerateRequest struct {
	CVID           uuid.UUID `json:"cv_id"`
	JobDescription string    `json:"job_description"`
	Title          string    `json:"title"`
}

type generatedContent struct {
	Text            string    `json:"text"`
	GeneratedWithAI bool      `json:"generated_with_ai"`
	JobDescription  string    `json:"job_description"`
	CreatedAt       time.Time `json:"created_at"`
}

// Repository: порт хранения писем.
type Repository interface {
	Create(ctx context.Context, l CoverLetter) error
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (CoverLetter, error)
	GetByIDAny(ctx context.Context, id uuid.UUID) (CoverLetter, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]CoverLetter, error)
	ListAll(ctx context.Context, limit, offset int) ([]CoverLetter, error)
	Update(ctx context.Context, l CoverLetter) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAny(ctx context.Context, id uuid.UUID) error
}
