// Package intent реализует HTTP-обработчик создания платёжного намерения
// для покупки курса. Сумма списания берётся из цены курса в каталоге;
// сумма из запроса лишь сверяется с ней.
package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-storefront/internal/http/response"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
	"github.com/magabrotheeeer/course-storefront/internal/paymentprovider"
	"github.com/magabrotheeeer/course-storefront/internal/storage"
)

// Request — тело запроса. Amount в долларах, CourseID числом или строкой.
type Request struct {
	Amount   float64     `json:"amount" validate:"required,gt=0"`
	CourseID json.Number `json:"courseId" validate:"required"`
}

// Response — client secret для платёжного виджета.
type Response struct {
	ClientSecret string `json:"clientSecret"`
}

// Courses описывает источник курсов.
type Courses interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
}

// ProviderClient определяет интерфейс для работы с платежным провайдером.
type ProviderClient interface {
	CreatePaymentIntent(ctx context.Context, params paymentprovider.CreateIntentRequest) (*paymentprovider.PaymentIntent, error)
}

// Handler обрабатывает запросы на создание платёжного намерения.
type Handler struct {
	log      *slog.Logger
	courses  Courses
	provider ProviderClient // nil, если провайдер не настроен
	currency string
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, courses Courses, provider ProviderClient, currency string) *Handler {
	return &Handler{
		log:      log,
		courses:  courses,
		provider: provider,
		currency: currency,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платёжное намерение
// @Description Создает PaymentIntent на цену курса и возвращает client secret
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Сумма и ID курса"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса или сумма"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка провайдера"
// @Failure 503 {object} response.ErrorResponse "Провайдер не настроен"
// @Router /create-payment-intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if h.provider == nil {
		log.Warn("payment provider is not configured")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("Payment provider is not configured"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	courseID, err := strconv.Atoi(req.CourseID.String())
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Course not found"))
		return
	}

	course, err := h.courses.GetCourse(r.Context(), courseID)
	if errors.Is(err, storage.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Course not found"))
		return
	}
	if err != nil {
		log.Error("failed to read course", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error creating payment intent", err))
		return
	}

	amount, err := toCents(course.Price)
	if err != nil {
		log.Error("course has malformed price", slog.String("price", course.Price), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error creating payment intent", err))
		return
	}
	if int64(math.Round(req.Amount*100)) != amount {
		log.Info("amount mismatch", slog.Float64("amount", req.Amount), slog.String("price", course.Price))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Amount does not match course price"))
		return
	}

	intent, err := h.provider.CreatePaymentIntent(r.Context(), paymentprovider.CreateIntentRequest{
		Amount:   amount,
		Currency: h.currency,
		Metadata: map[string]string{
			"courseId":    strconv.Itoa(course.ID),
			"courseTitle": course.Title,
		},
	})
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Unexpected("Error creating payment intent", err))
		return
	}

	log.Info("payment intent created", slog.String("intent_id", intent.ID), slog.Int("course_id", course.ID))
	render.JSON(w, r, Response{ClientSecret: intent.ClientSecret})
}

func toCents(price string) (int64, error) {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", price, err)
	}
	return int64(math.Round(v * 100)), nil
}
