package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/cvstudio/api/http/presenter"
	"github.com/artem13815/cvstudio/pkg/resume"
)

// ParseHandler разбирает файл без сохранения.
type ParseHandler struct {
	maxBytes int64
}

func NewParseHandler(maxBytes int64) *ParseHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &ParseHandler{maxBytes: maxBytes}
}

// Parse извлекает текст и структурированные секции из загруженного CV.
// @Summary Разобрать файл CV
// @Description Принимает PDF, DOCX, DOC или текст и возвращает результат разбора. Ничего не сохраняет.
// @Tags    Разбор
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Файл CV"
// @Security BearerAuth
// @Success 200 {object} resume.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 415 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /parse [post]
func (h *ParseHandler) Parse(c *fiber.Ctx) error {
	filename, data, err := readUpload(c, "file", h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	res, err := resume.ParseDocument(filename, data)
	if err != nil {
		return domainError(c, err)
	}
	if res.ParseError != "" {
		log.Warnw("partial parse", "filename", filename, "error", res.ParseError)
	}
	return presenter.JSON(c, http.StatusOK, res)
}
