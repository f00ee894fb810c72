// Package read реализует HTTP-обработчик для получения курса по ID.
//
// Handler извлекает ID из URL-параметров и возвращает курс в JSON-формате.
// Нечисловой ID обрабатывается как отсутствующий курс.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-storefront/internal/http/response"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
	"github.com/magabrotheeeer/course-storefront/internal/storage"
)

// Service описывает интерфейс чтения курса.
type Service interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
}

// Handler обрабатывает запросы на получение курса по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Источник курсов
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Курс по ID
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} models.Course
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Info("non-numeric course id", slog.String("id", chi.URLParam(r, "id")))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Course not found"))
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("course not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Course not found"))
		return
	}
	if err != nil {
		log.Error("failed to read course", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error fetching course", err))
		return
	}

	render.JSON(w, r, course)
}
