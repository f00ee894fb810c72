// Package videos реализует HTTP-обработчик для получения видео плейлиста.
//
// Существование плейлиста не проверяется: для неизвестного ID
// возвращается пустой массив.
package videos

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-storefront/internal/http/response"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
)

// Service описывает выборку видео по плейлисту.
type Service interface {
	GetVideosByPlaylist(ctx context.Context, playlistID int) ([]models.Video, error)
}

// Handler обрабатывает запросы на получение видео плейлиста.
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
// @Summary Видео плейлиста
// @Tags Playlists
// @Produce  json
// @Param id path int true "ID плейлиста"
// @Success 200 {array} models.Video
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /playlists/{id}/videos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.videos"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		// такой ID не совпадёт ни с одним плейлистом
		render.JSON(w, r, []models.Video{})
		return
	}

	videos, err := h.service.GetVideosByPlaylist(r.Context(), id)
	if err != nil {
		log.Error("failed to list playlist videos", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error fetching videos", err))
		return
	}

	log.Debug("playlist videos listed", slog.Int("playlist_id", id), slog.Int("count", len(videos)))
	render.JSON(w, r, videos)
}
