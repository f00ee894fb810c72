// Package subscribe реализует HTTP-обработчик подписки на рассылку.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-storefront/internal/http/response"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
	"github.com/magabrotheeeer/course-storefront/internal/storage"
)

// Request — тело запроса подписки.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Response — тело успешного ответа.
type Response struct {
	Message    string             `json:"message"`
	Newsletter *models.Newsletter `json:"newsletter"`
}

// Service описывает бизнес-логику подписки.
type Service interface {
	Subscribe(ctx context.Context, email string) (*models.Newsletter, error)
}

// Handler обрабатывает запросы подписки на рассылку.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписка на рассылку
// @Tags Newsletter
// @Accept  json
// @Produce  json
// @Param request body Request true "Email подписчика"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 409 {object} response.ErrorResponse "Email уже подписан"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /newsletter [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.subscribe"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	n, err := h.service.Subscribe(r.Context(), req.Email)
	if errors.Is(err, storage.ErrEmailExists) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Email already subscribed"))
		return
	}
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error subscribing to newsletter", err))
		return
	}

	render.JSON(w, r, Response{
		Message:    "Successfully subscribed to newsletter",
		Newsletter: n,
	})
}
