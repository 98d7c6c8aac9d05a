package coverletter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/cv"
)

// storedJobChars: сколько символов вакансии сохраняется в content.
const storedJobChars = 500

// UseCase: сценарии работы с сопроводительными письмами.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, in Draft) (CoverLetter, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (CoverLetter, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]CoverLetter, error)
	Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in Draft) (CoverLetter, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
	// Generate writes a letter for the CV and saves it.
	Generate(ctx context.Context, actorID uuid.UUID, isAdmin bool, req GenerateRequest) (CoverLetter, error)
}

type service struct {
	repo   Repository
	cvs    cv.UseCase
	writer Writer
	now    func() time.Time
}

func NewService(repo Repository, cvs cv.UseCase, writer Writer) UseCase {
	if writer == nil {
		writer = NewLLMWriter(nil)
	}
	return &service{
		repo:   repo,
		cvs:    cvs,
		writer: writer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, in Draft) (CoverLetter, error) {
	now := s.now()
	l := CoverLetter{ID: uuid.New(), OwnerID: actorID, Title: defaultTitle, Content: json.RawMessage(`{}`), CreatedAt: now}
	if err := s.apply(ctx, actorID, false, &l, in); err != nil {
		return CoverLetter{}, err
	}
	l.UpdatedAt = now
	if err := s.repo.Create(ctx, l); err != nil {
		return CoverLetter{}, err
	}
	return l, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (CoverLetter, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]CoverLetter, error) {
	if isAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actorID, limit, offset)
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in Draft) (CoverLetter, error) {
	l, err := s.Get(ctx, actorID, isAdmin, id)
	if err != nil {
		return CoverLetter{}, err
	}
	if err := s.apply(ctx, actorID, isAdmin, &l, in); err != nil {
		return CoverLetter{}, err
	}
	l.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, l); err != nil {
		return CoverLetter{}, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	if isAdmin {
		return s.repo.DeleteAny(ctx, id)
	}
	return s.repo.DeleteForOwner(ctx, actorID, id)
}

func (s *service) Generate(ctx context.Context, actorID uuid.UUID, isAdmin bool, req GenerateRequest) (CoverLetter, error) {
	jd := strings.TrimSpace(req.JobDescription)
	if jd == "" {
		return CoverLetter{}, ErrEmptyJobDescription
	}
	c, err := s.cvs.Get(ctx, actorID, isAdmin, req.CVID)
	if err != nil {
		return CoverLetter{}, err
	}
	letter, err := s.writer.Write(ctx, c, jd)
	if err != nil {
		return CoverLetter{}, fmt.Errorf("write cover letter: %w", err)
	}

	now := s.now()
	content, err := json.Marshal(generatedContent{
		Text:            letter.Text,
		GeneratedWithAI: letter.AIPowered,
		JobDescription:  truncate(jd, storedJobChars),
		CreatedAt:       now,
	})
	if err != nil {
		return CoverLetter{}, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = generatedTitle
	}
	cvID := c.ID
	l := CoverLetter{
		ID:        uuid.New(),
		OwnerID:   actorID,
		CVID:      &cvID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return CoverLetter{}, err
	}
	return l, nil
}

func (s *service) apply(ctx context.Context, actorID uuid.UUID, isAdmin bool, l *CoverLetter, in Draft) error {
	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t != "" {
			l.Title = t
		}
	}
	if len(bytes.TrimSpace(in.Content)) > 0 && !bytes.Equal(bytes.TrimSpace(in.Content), []byte("null")) {
		var obj map[string]any
		if err := json.Unmarshal(in.Content, &obj); err != nil {
			return fmt.Errorf("%w: content must be a JSON object", ErrInvalidPayload)
		}
		l.Content = append(json.RawMessage(nil), bytes.TrimSpace(in.Content)...)
	}
	if in.CVID != nil {
		if _, err := s.cvs.Get(ctx, actorID, isAdmin, *in.CVID); err != nil {
			if errors.Is(err, cv.ErrNotFound) {
				return fmt.Errorf("%w: cv_id not found", ErrInvalidPayload)
			}
			return err
		}
		l.CVID = in.CVID
	}
	return nil
}
