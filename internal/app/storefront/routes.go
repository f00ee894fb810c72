// Package storefront собирает HTTP-приложение витрины курсов.
package storefront

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// регистрирует swagger-спецификацию для /docs
	_ "github.com/magabrotheeeer/course-storefront/docs"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/auth/signup"
	courselist "github.com/magabrotheeeer/course-storefront/internal/http/handlers/course/list"
	courseread "github.com/magabrotheeeer/course-storefront/internal/http/handlers/course/read"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/health"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/newsletter/subscribe"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/payment/intent"
	playlistlist "github.com/magabrotheeeer/course-storefront/internal/http/handlers/playlist/list"
	playlistread "github.com/magabrotheeeer/course-storefront/internal/http/handlers/playlist/read"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/playlist/videos"
	videolist "github.com/magabrotheeeer/course-storefront/internal/http/handlers/video/list"
	"github.com/magabrotheeeer/course-storefront/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/course-storefront/internal/services/auth"
	newsletterservice "github.com/magabrotheeeer/course-storefront/internal/services/newsletter"
	"github.com/magabrotheeeer/course-storefront/internal/storage/memory"
)

// Deps — зависимости маршрутов. Store передаётся явно, у каждого теста свой.
type Deps struct {
	Store          *memory.Storage
	Auth           *authservice.Service
	Newsletter     *newsletterservice.Service
	Limiter        middlewarectx.Limiter
	Provider       intent.ProviderClient // nil, если оплата не настроена
	Currency       string
	AllowedOrigins []string
	// TrustProxy доверяет X-Real-IP/X-Forwarded-For. Без прокси клиент
	// подставил бы любой адрес и обошёл ограничение по IP.
	TrustProxy bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(middleware.RequestID)
	if d.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.Metrics,
		middlewarectx.CORS(d.AllowedOrigins),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/courses", courselist.New(logger, d.Store).ServeHTTP)
		r.Get("/courses/{id}", courseread.New(logger, d.Store).ServeHTTP)
		r.Get("/playlists", playlistlist.New(logger, d.Store).ServeHTTP)
		r.Get("/playlists/{id}", playlistread.New(logger, d.Store).ServeHTTP)
		r.Get("/playlists/{id}/videos", videos.New(logger, d.Store).ServeHTTP)
		r.Get("/videos", videolist.New(logger, d.Store).ServeHTTP)
		r.Post("/newsletter", subscribe.New(logger, d.Newsletter).ServeHTTP)
		r.Post("/create-payment-intent", intent.New(logger, d.Store, d.Provider, d.Currency).ServeHTTP)

		// Группа с ограничением частоты запросов
		r.Route("/auth", func(r chi.Router) {
			if d.Limiter != nil {
				r.Use(middlewarectx.RateLimitMiddleware(logger, d.Limiter))
			}
			r.Post("/signup", signup.New(logger, d.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, d.Auth).ServeHTTP)
		})
	})

	r.Get("/healthz", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
