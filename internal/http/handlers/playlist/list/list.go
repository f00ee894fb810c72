// Package list реализует HTTP-обработчик для получения всех плейлистов.
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

// Service описывает источник плейлистов.
type Service interface {
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
}

// Handler обрабатывает запросы на получение списка плейлистов.
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
// @Summary Список плейлистов
// @Tags Playlists
// @Produce  json
// @Success 200 {array} models.Playlist
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /playlists [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	playlists, err := h.service.ListPlaylists(r.Context())
	if err != nil {
		log.Error("failed to list playlists", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error fetching playlists", err))
		return
	}

	render.JSON(w, r, playlists)
}
