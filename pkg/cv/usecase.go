package cv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/resume"
)

const defaultTitle = "My CV"

// ErrUnsupportedPhoto is returned for photo uploads that are not images.
var ErrUnsupportedPhoto = errors.New("unsupported photo format")

var photoExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// MutateFunc derives the next state of a CV. changed=false skips the write.
type MutateFunc func(c CV, now time.Time) (next CV, changed bool, err error)

// UseCase: сценарии работы с CV. Все методы проверяют владельца,
// администратор видит любые записи.
type UseCase interface {
	Create(ctx context.Context, actorID uuid.UUID, payload []byte) (CV, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (CV, error)
	List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]CV, error)
	Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, payload []byte) (CV, error)
	ApplyChanges(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, payload []byte) (CV, error)
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
	Upload(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, filename string, data []byte) (CV, resume.Result, error)
	SetPhoto(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, filename string, data []byte) (CV, error)
	Versions(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, limit, offset int) ([]Version, error)
	Mutate(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, fn MutateFunc) (CV, bool, error)
}

type service struct {
	repo  Repository
	files FileStore
	now   func() time.Time
}

func NewService(repo Repository, files FileStore) UseCase {
	return &service{
		repo:  repo,
		files: files,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, payload []byte) (CV, error) {
	var p Patch
	if len(bytes.TrimSpace(payload)) > 0 {
		var err error
		if p, err = DecodePatch(payload); err != nil {
			return CV{}, err
		}
	}
	now := s.now()
	c := Reconcile(CV{
		ID:        uuid.New(),
		OwnerID:   actorID,
		CreatedAt: now,
	}, p, now)
	if strings.TrimSpace(c.Title) == "" {
		c.Title = defaultTitle
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return CV{}, err
	}
	return created.Projection(), nil
}

func (s *service) load(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (CV, error) {
	if isAdmin {
		return s.repo.GetByIDAny(ctx, id)
	}
	return s.repo.GetByIDForOwner(ctx, actorID, id)
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (CV, error) {
	c, err := s.load(ctx, actorID, isAdmin, id)
	if err != nil {
		return CV{}, err
	}
	return c.Projection(), nil
}

func (s *service) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]CV, error) {
	var (
		items []CV
		err   error
	)
	if isAdmin {
		items, err = s.repo.ListAll(ctx, limit, offset)
	} else {
		items, err = s.repo.ListByOwner(ctx, actorID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = items[i].Projection()
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, payload []byte) (CV, error) {
	p, err := DecodePatch(payload)
	if err != nil {
		return CV{}, err
	}
	c, _, err := s.Mutate(ctx, actorID, isAdmin, id, func(c CV, now time.Time) (CV, bool, error) {
		if p.ExpectedVersion != nil && *p.ExpectedVersion != c.CurrentVersion {
			return c, false, ErrConflict
		}
		return Reconcile(c, p, now), true, nil
	})
	return c, err
}

// ApplyChanges stores an AI-enhanced document. It takes the same path as a
// client edit; the payload is usually a projection returned by Enhance.
func (s *service) ApplyChanges(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, payload []byte) (CV, error) {
	return s.Update(ctx, actorID, isAdmin, id, payload)
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	c, err := s.load(ctx, actorID, isAdmin, id)
	if err != nil {
		return err
	}
	if isAdmin {
		err = s.repo.DeleteAny(ctx, id)
	} else {
		err = s.repo.DeleteForOwner(ctx, actorID, id)
	}
	if err != nil {
		return err
	}
	for _, path := range []string{c.FilePath, c.PhotoPath} {
		if path == "" {
			continue
		}
		if err := s.files.Remove(ctx, path); err != nil {
			log.Warnw("failed to remove cv file", "cv_id", id, "path", path, "error", err)
		}
	}
	return nil
}

// Upload parses the document before anything is written: an extraction
// error leaves both the record and the file store untouched.
func (s *service) Upload(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, filename string, data []byte) (CV, resume.Result, error) {
	c, err := s.load(ctx, actorID, isAdmin, id)
	if err != nil {
		return CV{}, resume.Result{}, err
	}
	res, err := resume.ParseDocument(filename, data)
	if err != nil {
		return CV{}, resume.Result{}, err
	}
	if res.ParseError != "" {
		log.Warnw("cv parse degraded", "cv_id", id, "file", filename, "error", res.ParseError)
	}
	if len(res.Diagnostics) > 0 {
		log.Debugw("cv parse diagnostics", "cv_id", id, "count", len(res.Diagnostics))
	}

	path, err := s.files.Save(ctx, fileKey("cvs", id, filename), data)
	if err != nil {
		return CV{}, resume.Result{}, fmt.Errorf("store upload: %w", err)
	}
	next := FromParse(c, res, filename, path, s.now())
	updated, err := s.repo.Update(ctx, next, c.CurrentVersion)
	if err != nil {
		if rmErr := s.files.Remove(ctx, path); rmErr != nil {
			log.Warnw("failed to remove orphaned upload", "cv_id", id, "path", path, "error", rmErr)
		}
		return CV{}, resume.Result{}, err
	}
	return updated.Projection(), res, nil
}

func (s *service) SetPhoto(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, filename string, data []byte) (CV, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !photoExts[ext] {
		return CV{}, fmt.Errorf("%w: %q", ErrUnsupportedPhoto, ext)
	}
	c, err := s.load(ctx, actorID, isAdmin, id)
	if err != nil {
		return CV{}, err
	}
	path, err := s.files.Save(ctx, fileKey("photos", id, filename), data)
	if err != nil {
		return CV{}, fmt.Errorf("store photo: %w", err)
	}
	next := c
	next.PhotoPath = path
	next.PersonalInfo = c.PersonalInfo.clone()
	next.PersonalInfo.Set("photo", path)
	bump(&next, s.now())
	updated, err := s.repo.Update(ctx, next, c.CurrentVersion)
	if err != nil {
		if rmErr := s.files.Remove(ctx, path); rmErr != nil {
			log.Warnw("failed to remove orphaned photo", "cv_id", id, "path", path, "error", rmErr)
		}
		return CV{}, err
	}
	if c.PhotoPath != "" && c.PhotoPath != path {
		if err := s.files.Remove(ctx, c.PhotoPath); err != nil {
			log.Warnw("failed to remove previous photo", "cv_id", id, "path", c.PhotoPath, "error", err)
		}
	}
	return updated.Projection(), nil
}

func (s *service) Versions(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, limit, offset int) ([]Version, error) {
	if _, err := s.load(ctx, actorID, isAdmin, id); err != nil {
		return nil, err
	}
	return s.repo.ListVersions(ctx, id, limit, offset)
}

// Mutate loads the CV, derives the next state with fn and stores it against
// the version that was read.
func (s *service) Mutate(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, fn MutateFunc) (CV, bool, error) {
	c, err := s.load(ctx, actorID, isAdmin, id)
	if err != nil {
		return CV{}, false, err
	}
	next, changed, err := fn(c, s.now())
	if err != nil {
		return CV{}, false, err
	}
	if !changed {
		return c.Projection(), false, nil
	}
	updated, err := s.repo.Update(ctx, next, c.CurrentVersion)
	if err != nil {
		return CV{}, false, err
	}
	return updated.Projection(), true, nil
}

// fileKey builds "<dir>/<cv id>_<base name>".
func fileKey(dir string, id uuid.UUID, filename string) string {
	return dir + "/" + id.String() + "_" + filepath.Base(filename)
}
