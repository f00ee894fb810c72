// Package middlewarectx содержит middleware HTTP-сервера витрины:
// ограничение частоты запросов, метрики и CORS.
package middlewarectx

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-storefront/internal/http/response"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
)

// Limiter решает, пропустить ли очередной запрос с ключом key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware ограничивает частоту запросов с одного IP.
// Ошибка лимитера не блокирует запрос.
func RateLimitMiddleware(log *slog.Logger, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RateLimit"

			key := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter failed, request let through",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				log.Info("too many requests", slog.String("op", op), slog.String("client", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
