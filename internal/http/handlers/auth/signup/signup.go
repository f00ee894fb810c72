// Package signup реализует HTTP-обработчик регистрации пользователей.
//
// Handler проверяет наличие username, email и password, длину пароля,
// делегирует регистрацию сервису и возвращает созданного пользователя
// без пароля.
package signup

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

const (
	msgRequired      = "Username, email, and password are required"
	msgShortPassword = "Password must be at least 6 characters long"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Response — тело успешного ответа. У models.User нет пароля в JSON.
type Response struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не хватает полей или пароль короче 6 символов"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email заняты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationResponse(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, storage.ErrUsernameExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Username already exists"))
		return
	case errors.Is(err, storage.ErrEmailExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Email already exists"))
		return
	case err != nil:
		log.Error("signup failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error creating user", err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "User created successfully",
		User:    user,
	})
}

// validationResponse выбирает сообщение: сначала отсутствующие поля,
// затем короткий пароль, иначе общее описание ошибок.
func validationResponse(errs validator.ValidationErrors) response.ErrorResponse {
	for _, e := range errs {
		if e.ActualTag() == "required" {
			return response.Error(msgRequired)
		}
	}
	for _, e := range errs {
		if e.Field() == "Password" && e.ActualTag() == "min" {
			return response.Error(msgShortPassword)
		}
	}
	return response.ValidationError(errs)
}
