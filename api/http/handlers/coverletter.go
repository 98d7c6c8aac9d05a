package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/coverletter"
)

type CoverLetterHandler struct {
	uc coverletter.UseCase
}

func NewCoverLetterHandler(uc coverletter.UseCase) *CoverLetterHandler {
	return &CoverLetterHandler{uc: uc}
}

// @Summary Список сопроводительных писем
// @Tags    Письма
// @Produce json
// @Param   limit  query int false "Лимит (1..200)"
// @Param   offset query int false "Смещение"
// @Security BearerAuth
// @Success 200 {array} coverletter.CoverLetter
// @Router  /cover-letters [get]
func (h *CoverLetterHandler) List(c *fiber.Ctx) error {
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

// @Summary Создать письмо
// @Tags    Письма
// @Accept  json
// @Produce json
// @Param   input body coverletter.Draft true "Заголовок, content (JSON объект) и cv_id"
// @Security BearerAuth
// @Success 201 {object} coverletter.CoverLetter
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /cover-letters [post]
func (h *CoverLetterHandler) Create(c *fiber.Ctx) error {
	actorID, _, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	var req coverletter.Draft
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	out, err := h.uc.Create(c.Context(), actorID, req)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Generate пишет письмо по CV и тексту вакансии и сохраняет его.
// Без модели используется шаблон, generated_with_ai=false.
// @Summary Сгенерировать письмо
// @Tags    Письма
// @Accept  json
// @Produce json
// @Param   input body coverletter.GenerateRequest true "cv_id, job_description, title"
// @Security BearerAuth
// @Success 201 {object} coverletter.CoverLetter
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cover-letters/generate [post]
func (h *CoverLetterHandler) Generate(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	var req coverletter.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	out, err := h.uc.Generate(c.Context(), actorID, isAdmin, req)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// @Summary Получить письмо
// @Tags    Письма
// @Produce json
// @Param   id path string true "ID письма (UUID)"
// @Security BearerAuth
// @Success 200 {object} coverletter.CoverLetter
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cover-letters/{id} [get]
func (h *CoverLetterHandler) Get(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		out, err := h.uc.Get(c.Context(), actorID, isAdmin, id)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// @Summary Обновить письмо
// @Tags    Письма
// @Accept  json
// @Produce json
// @Param   id    path string            true "ID письма (UUID)"
// @Param   input body coverletter.Draft true "Изменяемые поля"
// @Security BearerAuth
// @Success 200 {object} coverletter.CoverLetter
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cover-letters/{id} [put]
func (h *CoverLetterHandler) Update(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		var req coverletter.Draft
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
		}
		out, err := h.uc.Update(c.Context(), actorID, isAdmin, id, req)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// @Summary Удалить письмо
// @Tags    Письма
// @Produce json
// @Param   id path string true "ID письма (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cover-letters/{id} [delete]
func (h *CoverLetterHandler) Delete(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		if err := h.uc.Delete(c.Context(), actorID, isAdmin, id); err != nil {
			return domainError(c, err)
		}
		return presenter.Message(c, http.StatusOK, "Cover letter deleted successfully")
	})
}
