package customization

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/nlp"
)

// Статусы ответа Enhance.
const (
	StatusSuccess     = "success"
	StatusUnavailable = "unavailable"
)

const maxKeywordsInResponse = 20

// ApplyResult: итог применения рекомендации.
type ApplyResult struct {
	CV         cv.CV      `json:"updated_cv"`
	Suggestion Suggestion `json:"suggestion"`
	Merged     bool       `json:"merged"`
	Message    string     `json:"message"`
}

// EnhanceResult содержит переписанный CV; он не сохраняется, пока клиент
// не отправит его в apply-ai-changes.
type EnhanceResult struct {
	Status     string `json:"status"`
	EnhancedCV cv.CV  `json:"enhanced_cv"`
	Message    string `json:"message"`
}

// UseCase: сценарии адаптации CV под вакансию.
type UseCase interface {
	Customize(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, jobDescription string) (Customization, error)
	ListSuggestions(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, limit, offset int) ([]Suggestion, error)
	ApplySuggestion(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID, suggestionID uuid.UUID) (ApplyResult, error)
	Enhance(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, jobDescription string) (EnhanceResult, error)
}

type service struct {
	repo      Repository
	cvs       cv.UseCase
	generator SuggestionGenerator
	enhancer  SectionEnhancer
	now       func() time.Time
}

func NewService(repo Repository, cvs cv.UseCase, generator SuggestionGenerator, enhancer SectionEnhancer) UseCase {
	if generator == nil {
		generator = RuleBased{}
	}
	return &service{
		repo:      repo,
		cvs:       cvs,
		generator: generator,
		enhancer:  enhancer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// keywordText is the part of the CV that is matched against the posting.
func keywordText(c cv.CV) string {
	parts := []string{c.FullName, c.ProfileSummary}
	for _, e := range c.Experiences {
		parts = append(parts, e.Description)
	}
	parts = append(parts, c.Skills.Names()...)
	return strings.Join(parts, " ")
}

func (s *service) Customize(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, jobDescription string) (Customization, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return Customization{}, ErrEmptyJobDescription
	}
	c, err := s.cvs.Get(ctx, actorID, isAdmin, cvID)
	if err != nil {
		return Customization{}, err
	}

	score, matched, missing := nlp.MatchScore(nlp.ExtractKeywords(keywordText(c)), nlp.ExtractKeywords(jobDescription))
	in := Input{CV: c, JobDescription: jobDescription, Matched: matched, Missing: missing, Score: score}

	suggestions, err := s.generator.Suggest(ctx, in)
	if err != nil {
		// генератор не должен ронять сценарий: откатываемся на правила
		log.Warnw("suggestion generator failed", "cv_id", cvID, "error", err)
		suggestions = ruleSuggestions(in)
	}

	now := s.now()
	rec := Customization{
		ID:              uuid.New(),
		CVID:            cvID,
		JobDescription:  jobDescription,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Score:           score,
		CreatedAt:       now,
		Suggestions:     make([]Suggestion, 0, len(suggestions)),
	}
	for _, sg := range suggestions {
		sg.ID = uuid.New()
		sg.CVID = cvID
		sg.CustomizationID = rec.ID
		if !cv.ValidSection(sg.Section) {
			sg.Section = cv.SectionGeneral
		}
		sg.CreatedAt, sg.UpdatedAt = now, now
		if sg.Source == SourceAI {
			rec.AIPowered = true
		}
		rec.Suggestions = append(rec.Suggestions, sg)
	}

	saved, err := s.repo.Create(ctx, rec)
	if err != nil {
		return Customization{}, err
	}
	saved.MatchedKeywords = head(saved.MatchedKeywords, maxKeywordsInResponse)
	saved.MissingKeywords = head(saved.MissingKeywords, maxKeywordsInResponse)
	return saved, nil
}

func (s *service) ListSuggestions(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, limit, offset int) ([]Suggestion, error) {
	if _, err := s.cvs.Get(ctx, actorID, isAdmin, cvID); err != nil {
		return nil, err
	}
	return s.repo.ListSuggestions(ctx, cvID, limit, offset)
}

func (s *service) ApplySuggestion(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID, suggestionID uuid.UUID) (ApplyResult, error) {
	if _, err := s.cvs.Get(ctx, actorID, isAdmin, cvID); err != nil {
		return ApplyResult{}, err
	}
	sg, err := s.repo.GetSuggestion(ctx, cvID, suggestionID)
	if err != nil {
		return ApplyResult{}, err
	}
	if sg.Applied {
		return ApplyResult{}, ErrAlreadyApplied
	}

	updated, merged, err := s.cvs.Mutate(ctx, actorID, isAdmin, cvID, func(c cv.CV, now time.Time) (cv.CV, bool, error) {
		return cv.ApplySuggestion(c, sg.Section, sg.Data, now)
	})
	if err != nil {
		return ApplyResult{}, err
	}

	now := s.now()
	if err := s.repo.MarkApplied(ctx, sg.ID, now); err != nil {
		return ApplyResult{}, err
	}
	sg.Applied = true
	sg.UpdatedAt = now

	msg := "Suggestion applied successfully"
	if !merged {
		msg = "Suggestion marked as applied (no data to merge)"
	}
	return ApplyResult{CV: updated, Suggestion: sg, Merged: merged, Message: msg}, nil
}

func (s *service) Enhance(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, jobDescription string) (EnhanceResult, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return EnhanceResult{}, ErrEmptyJobDescription
	}
	c, err := s.cvs.Get(ctx, actorID, isAdmin, cvID)
	if err != nil {
		return EnhanceResult{}, err
	}
	unavailable := EnhanceResult{
		Status:     StatusUnavailable,
		EnhancedCV: c,
		Message:    "AI enhancement unavailable, original CV data returned.",
	}
	if s.enhancer == nil {
		return unavailable, nil
	}
	enhanced, err := s.enhancer.EnhanceSections(ctx, c, jobDescription)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			log.Warnw("cv enhancement failed", "cv_id", cvID, "error", err)
		}
		return unavailable, nil
	}
	return EnhanceResult{
		Status:     StatusSuccess,
		EnhancedCV: enhanced.Projection(),
		Message:    "AI enhancement complete. Call /apply-ai-changes to save.",
	}, nil
}
