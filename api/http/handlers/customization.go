package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/customization"
)

type CustomizationHandler struct {
	uc customization.UseCase
}

func NewCustomizationHandler(uc customization.UseCase) *CustomizationHandler {
	return &CustomizationHandler{uc: uc}
}

type jobDescriptionRequest struct {
	JobDescription string `json:"job_description"`
}

// Customize сравнивает CV с вакансией и сохраняет рекомендации.
// @Summary Адаптировать CV под вакансию
// @Tags    Адаптация
// @Accept  json
// @Produce json
// @Param   id    path string                true "ID CV (UUID)"
// @Param   input body jobDescriptionRequest true "Текст вакансии"
// @Security BearerAuth
// @Success 200 {object} customization.Customization
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/customize [post]
func (h *CustomizationHandler) Customize(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный id")
	}
	var req jobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	out, err := h.uc.Customize(c.Context(), actorID, isAdmin, id, req.JobDescription)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Enhance переписывает опыт, проекты и навыки под вакансию без сохранения.
// @Summary AI-улучшение CV под вакансию
// @Tags    Адаптация
// @Accept  json
// @Produce json
// @Param   id    path string                true "ID CV (UUID)"
// @Param   input body jobDescriptionRequest true "Текст вакансии"
// @Security BearerAuth
// @Success 200 {object} customization.EnhanceResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/enhance-for-job [post]
func (h *CustomizationHandler) Enhance(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный id")
	}
	var req jobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	out, err := h.uc.Enhance(c.Context(), actorID, isAdmin, id, req.JobDescription)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Suggestions возвращает рекомендации по CV.
// @Summary Рекомендации по CV
// @Tags    Адаптация
// @Produce json
// @Param   id     path  string true  "ID CV (UUID)"
// @Param   limit  query int    false "Лимит (1..200)"
// @Param   offset query int    false "Смещение"
// @Security BearerAuth
// @Success 200 {array} customization.Suggestion
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/suggestions [get]
func (h *CustomizationHandler) Suggestions(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный id")
	}
	limit, offset := parseLimitOffset(c, 50)
	out, err := h.uc.ListSuggestions(c.Context(), actorID, isAdmin, id, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// ApplySuggestion вливает данные рекомендации в CV.
// @Summary Применить рекомендацию
// @Tags    Адаптация
// @Produce json
// @Param   id  path string true "ID CV (UUID)"
// @Param   sid path string true "ID рекомендации (UUID)"
// @Security BearerAuth
// @Success 200 {object} customization.ApplyResult
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/suggestions/{sid}/apply [post]
func (h *CustomizationHandler) ApplySuggestion(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный id")
	}
	sid, err := pathID(c, "sid")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный sid")
	}
	out, err := h.uc.ApplySuggestion(c.Context(), actorID, isAdmin, id, sid)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}
