package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/cv"
)

type CVHandler struct {
	uc       cv.UseCase
	maxBytes int64
}

func NewCVHandler(uc cv.UseCase, maxBytes int64) *CVHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &CVHandler{uc: uc, maxBytes: maxBytes}
}

// List возвращает CV текущего пользователя (админ видит все).
// @Summary Список CV
// @Tags    CV
// @Produce json
// @Param   limit  query int false "Лимит (1..200)"
// @Param   offset query int false "Смещение"
// @Security BearerAuth
// @Success 200 {array} cv.CV
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cvs [get]
func (h *CVHandler) List(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.List(c.Context(), actorID, isAdmin, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Create создаёт CV из JSON в любом из поддерживаемых написаний ключей.
// @Summary Создать CV
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   input body object true "Данные CV (snake_case или camelCase)"
// @Security BearerAuth
// @Success 201 {object} cv.CV
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cvs [post]
func (h *CVHandler) Create(c *fiber.Ctx) error {
	actorID, _, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	out, err := h.uc.Create(c.Context(), actorID, c.Body())
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get возвращает каноническую проекцию CV.
// @Summary Получить CV
// @Tags    CV
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [get]
func (h *CVHandler) Get(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		out, err := h.uc.Get(c.Context(), actorID, isAdmin, id)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// Update применяет правку из редактора. Секции заменяются целиком.
// @Summary Обновить CV
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   id    path string true "ID CV (UUID)"
// @Param   input body object true "Изменённые поля; expected_version включает проверку версии"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [put]
func (h *CVHandler) Update(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		out, err := h.uc.Update(c.Context(), actorID, isAdmin, id, c.Body())
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// Delete удаляет CV вместе с версиями, рекомендациями и файлами.
// @Summary Удалить CV
// @Tags    CV
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [delete]
func (h *CVHandler) Delete(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		if err := h.uc.Delete(c.Context(), actorID, isAdmin, id); err != nil {
			return domainError(c, err)
		}
		return presenter.Message(c, http.StatusOK, "CV deleted successfully")
	})
}

// Upload разбирает PDF/DOCX/DOC/TXT и заполняет CV извлечёнными данными.
// @Summary Загрузить файл CV
// @Tags    CV
// @Accept  multipart/form-data
// @Produce json
// @Param   id   path     string true "ID CV (UUID)"
// @Param   file formData file   true "Файл CV"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 415 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/upload [post]
func (h *CVHandler) Upload(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		filename, data, err := readUpload(c, "file", h.maxBytes)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		out, res, err := h.uc.Upload(c.Context(), actorID, isAdmin, id, filename, data)
		if err != nil {
			return domainError(c, err)
		}
		if res.ParseError != "" {
			c.Set("X-Parse-Warning", "partial parse")
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// Photo сохраняет фото профиля.
// @Summary Загрузить фото
// @Tags    CV
// @Accept  multipart/form-data
// @Produce json
// @Param   id   path     string true "ID CV (UUID)"
// @Param   file formData file   true "Изображение (jpg, png, webp, gif)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 415 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/photo [post]
func (h *CVHandler) Photo(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		filename, data, err := readUpload(c, "file", h.maxBytes)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		out, err := h.uc.SetPhoto(c.Context(), actorID, isAdmin, id, filename, data)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, fiber.Map{"photo_path": out.PhotoPath})
	})
}

// Versions возвращает снимки CV, новые первыми.
// @Summary История версий
// @Tags    CV
// @Produce json
// @Param   id     path  string true  "ID CV (UUID)"
// @Param   limit  query int    false "Лимит (1..200)"
// @Param   offset query int    false "Смещение"
// @Security BearerAuth
// @Success 200 {array} cv.Version
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/versions [get]
func (h *CVHandler) Versions(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		limit, offset := parseLimitOffset(c, 20)
		out, err := h.uc.Versions(c.Context(), actorID, isAdmin, id, limit, offset)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

type applyAIChangesRequest struct {
	EnhancedCV json.RawMessage `json:"enhanced_cv" swaggertype:"object"`
}

// ApplyAIChanges сохраняет CV, полученный из enhance-for-job.
// @Summary Сохранить AI-изменения
// @Tags    Адаптация
// @Accept  json
// @Produce json
// @Param   id    path string                true "ID CV (UUID)"
// @Param   input body applyAIChangesRequest true "enhanced_cv из enhance-for-job"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/apply-ai-changes [post]
func (h *CVHandler) ApplyAIChanges(c *fiber.Ctx) error {
	return h.withCV(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		var req applyAIChangesRequest
		if err := c.BodyParser(&req); err != nil || !bytes.HasPrefix(bytes.TrimSpace(req.EnhancedCV), []byte("{")) {
			return presenter.Error(c, http.StatusBadRequest, "enhanced_cv must be a JSON object")
		}
		out, err := h.uc.ApplyChanges(c.Context(), actorID, isAdmin, id, req.EnhancedCV)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// withCV resolves the actor and the :id path parameter.
func (h *CVHandler) withCV(c *fiber.Ctx, fn func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error) error {
	return withID(c, fn)
}
