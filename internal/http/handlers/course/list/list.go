// Package list реализует HTTP-обработчик для получения всех курсов каталога.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-storefront/internal/http/response"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
)

// Service описывает источник курсов.
type Service interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
}

// Handler обрабатывает запросы на получение списка курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Description Возвращает все курсы в порядке добавления
// @Tags Courses
// @Produce  json
// @Success 200 {array} models.Course
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error fetching courses", err))
		return
	}

	log.Debug("courses listed", slog.Int("count", len(courses)))
	render.JSON(w, r, courses)
}
