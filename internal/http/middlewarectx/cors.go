package middlewarectx

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS разрешает браузерному клиенту обращаться к API с перечисленных origin.
// Пустой список разрешает любой origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	})
	return c.Handler
}
