// Package read реализует HTTP-обработчик для получения плейлиста по ID.
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

// Service описывает интерфейс чтения плейлиста.
type Service interface {
	GetPlaylist(ctx context.Context, id int) (*models.Playlist, error)
}

// Handler обрабатывает запросы на получение плейлиста.
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
// @Summary Плейлист по ID
// @Tags Playlists
// @Produce  json
// @Param id path int true "ID плейлиста"
// @Success 200 {object} models.Playlist
// @Failure 404 {object} response.ErrorResponse "Плейлист не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /playlists/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Playlist not found"))
		return
	}

	playlist, err := h.service.GetPlaylist(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("playlist not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Playlist not found"))
		return
	}
	if err != nil {
		log.Error("failed to read playlist", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error fetching playlist", err))
		return
	}

	render.JSON(w, r, playlist)
}
