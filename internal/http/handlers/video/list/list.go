// Package list реализует HTTP-обработчик для получения всех видео.
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

// Service описывает источник видео.
type Service interface {
	ListVideos(ctx context.Context) ([]models.Video, error)
}

// Handler обрабатывает запросы на получение списка видео.
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
// @Summary Список видео
// @Tags Videos
// @Produce  json
// @Success 200 {array} models.Video
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /videos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.video.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	videos, err := h.service.ListVideos(r.Context())
	if err != nil {
		log.Error("failed to list videos", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error fetching videos", err))
		return
	}

	render.JSON(w, r, videos)
}
