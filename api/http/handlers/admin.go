package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/admin"
)

// AdminHandler: управление пользователями, только для is_admin.
type AdminHandler struct {
	uc admin.UseCase
}

func NewAdminHandler(uc admin.UseCase) *AdminHandler { return &AdminHandler{uc: uc} }

// @Summary Список пользователей
// @Tags    Админ
// @Produce json
// @Param   limit  query int false "Лимит (1..200)"
// @Param   offset query int false "Смещение"
// @Security BearerAuth
// @Success 200 {array}  admin.UserSummary
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	limit, offset := parseLimitOffset(c, 50)
	users, err := h.uc.ListUsers(c.Context(), actorID, isAdmin, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, users)
}

// @Summary Изменить флаги пользователя
// @Tags    Админ
// @Accept  json
// @Produce json
// @Param   id    path string          true "ID пользователя (UUID)"
// @Param   input body admin.UserPatch true "is_active, is_superuser"
// @Security BearerAuth
// @Success 200 {object} admin.UserSummary
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		var req admin.UserPatch
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
		}
		u, err := h.uc.UpdateUser(c.Context(), actorID, isAdmin, id, req)
		if err != nil {
			return domainError(c, err)
		}
		return presenter.JSON(c, http.StatusOK, u)
	})
}

// @Summary Удалить пользователя
// @Description Удаляет пользователя и все его данные.
// @Tags    Админ
// @Produce json
// @Param   id path string true "ID пользователя (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	return withID(c, func(actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
		if err := h.uc.DeleteUser(c.Context(), actorID, isAdmin, id); err != nil {
			return domainError(c, err)
		}
		return presenter.Message(c, http.StatusOK, "User "+id.String()+" deleted")
	})
}

// @Summary Сводка для админ-панели
// @Tags    Админ
// @Produce json
// @Security BearerAuth
// @Success 200 {object} admin.Stats
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	actorID, isAdmin, err := actor(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, err.Error())
	}
	st, err := h.uc.Stats(c.Context(), actorID, isAdmin)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}
