package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/admin"
	"github.com/artem13815/cvstudio/pkg/application"
	"github.com/artem13815/cvstudio/pkg/auth"
	"github.com/artem13815/cvstudio/pkg/coverletter"
	"github.com/artem13815/cvstudio/pkg/customization"
	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/resume"
)

const (
	defaultMaxUpload = 15 << 20 // 15MB
	maxPageLimit     = 200
)

var errNoActor = errors.New("не удалось определить пользователя")

// actor достаёт пользователя, выставленного JWT middleware.
func actor(c *fiber.Ctx) (uuid.UUID, bool, error) {
	userIDStr, _ := c.Locals("userId").(string)
	actorID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, errNoActor
	}
	isAdmin, _ := c.Locals("isAdmin").(bool)
	return actorID, isAdmin, nil
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// withID resolves the actor and the :id path parameter before fn runs.
func withID(c *fiber.Ctx, fn func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный id")
	}
	return fn(actorID, isAdmin, id)
}

// parseLimitOffset читает limit/offset; невалидные значения заменяются дефолтами.
func parseLimitOffset(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = defLimit
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageLimit {
			limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// readUpload reads the multipart field into memory, failing past max bytes.
func readUpload(c *fiber.Ctx, field string, max int64) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil, fmt.Errorf("%s is required", field)
	}
	file, err := fh.Open()
	if err != nil {
		return "", nil, errors.New("failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, max)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}

// domainError переводит ошибки use case в HTTP статусы.
func domainError(c *fiber.Ctx, err error) error {
	var (
		status     int
		validation application.ErrValidation
	)
	switch {
	case errors.Is(err, resume.ErrUnsupportedFormat), errors.Is(err, cv.ErrUnsupportedPhoto):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, resume.ErrExtractionFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, cv.ErrNotFound), errors.Is(err, customization.ErrSuggestionNotFound), errors.Is(err, auth.ErrNotFound),
		errors.Is(err, application.ErrNotFound), errors.Is(err, coverletter.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cv.ErrConflict), errors.Is(err, customization.ErrAlreadyApplied), errors.Is(err, auth.ErrUserAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, cv.ErrInvalidPayload), errors.Is(err, customization.ErrEmptyJobDescription),
		errors.Is(err, application.ErrInvalidStatus), errors.As(err, &validation),
		errors.Is(err, coverletter.ErrInvalidPayload), errors.Is(err, coverletter.ErrEmptyJobDescription),
		errors.Is(err, admin.ErrSelfAction):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrUserDisabled), errors.Is(err, admin.ErrForbidden):
		status = http.StatusForbidden
	default:
		log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
	return presenter.Error(c, status, err.Error())
}
