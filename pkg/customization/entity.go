package customization

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrAlreadyApplied      = errors.New("suggestion already applied")
	ErrEmptyJobDescription = errors.New("job description is required")
)

// Источник рекомендации.
const (
	SourceAI    = "ai"
	SourceRules = "rules"
)

// Suggestion: одна рекомендация по улучшению CV. Data, если есть,
// содержит готовый фрагмент секции для ApplySuggestion.
type Suggestion struct {
	ID              uuid.UUID       `json:"id"`
	CVID            uuid.UUID       `json:"cv_id"`
	CustomizationID uuid.UUID       `json:"customization_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Text            string          `json:"suggestion_text"`
	Section         string          `json:"section"`
	Data            json.RawMessage `json:"suggestion_data,omitempty"`
	Source          string          `json:"source"`
	Applied         bool            `json:"is_applied"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Customization: результат сравнения CV с вакансией.
type Customization struct {
	ID              uuid.UUID    `json:"id"`
	CVID            uuid.UUID    `json:"cv_id"`
	JobDescription  string       `json:"job_description"`
	MatchedKeywords []string     `json:"matched_keywords"`
	MissingKeywords []string     `json:"missing_keywords"`
	Score           int          `json:"score"`
	AIPowered       bool         `json:"ai_powered"`
	Suggestions     []Suggestion `json:"suggestions"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Repository: порт для сохранения анализов и рекомендаций.
type Repository interface {
	// Create stores the customization together with its suggestions.
	Create(ctx context.Context, c Customization) (Customization, error)
	ListSuggestions(ctx context.Context, cvID uuid.UUID, limit, offset int) ([]Suggestion, error)
	GetSuggestion(ctx context.Context, cvID, id uuid.UUID) (Suggestion, error)
	MarkApplied(ctx context.Context, id uuid.UUID, at time.Time) error
}
