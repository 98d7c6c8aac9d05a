package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/application"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type statusRequest struct {
	Status string `json:"status"`
}

// @Summary Список откликов
// @Description Отклики текущего пользователя, новые изменения первыми. Фильтр по статусу необязателен.
// @Tags    Отклики
// @Produce json
// @Param   status query string false "saved | applied | interviewing | offer | rejected"
// @Param   limit  query int    false "Лимит (1..200)"
// @Param   offset query int    false "Смещение"
// @Security BearerAuth
// @Success 200 {array}  application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.List(c.Context(), actorID, isAdmin, c.Query("status"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary Статистика откликов
// @Description Число откликов по каждому статусу и total.
// @Tags    Отклики
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router  /applications/stats [get]
func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	actorID, _, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	stats, err := h.uc.Stats(c.Context(), actorID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, stats)
}

// @Summary Создать отклик
// @Tags    Отклики
// @Accept  json
// @Produce json
// @Param   input body application.Fields true "Данные отклика (company и role обязательны)"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	actorID, _, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	var req application.Fields
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	out, err := h.uc.Create(c.Context(), actorID, req)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// @Summary Получить отклик
// @Tags    Отклики
// @Produce json
// @Param   id path string true "ID отклика (UUID)"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		out, err := h.uc.Get(c.Context(), actorID, isAdmin, id)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// @Summary Обновить отклик
// @Description Меняет только переданные поля.
// @Tags    Отклики
// @Accept  json
// @Produce json
// @Param   id    path string             true "ID отклика (UUID)"
// @Param   input body application.Fields true "Изменяемые поля"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		var req application.Fields
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

// SetStatus принимает статус из тела {"status": ...} или из query status/new_status.
// @Summary Сменить статус отклика
// @Tags    Отклики
// @Accept  json
// @Produce json
// @Param   id     path  string        true  "ID отклика (UUID)"
// @Param   input  body  statusRequest false "Новый статус"
// @Param   status query string        false "Новый статус"
// @Security BearerAuth
// @Success 200 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id}/status [patch]
func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		var req statusRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
			}
		}
		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = c.Query("status", c.Query("new_status"))
		}
		out, err := h.uc.SetStatus(c.Context(), actorID, isAdmin, id, status)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, out)
	})
}

// @Summary Удалить отклик
// @Tags    Отклики
// @Produce json
// @Param   id path string true "ID отклика (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		if err := h.uc.Delete(c.Context(), actorID, isAdmin, id); err != nil {
			return domainError(c, err)
		}
		return presenter.Message(c, http.StatusOK, "Job application deleted successfully")
	})
}
