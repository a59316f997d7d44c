package tools

import (
	"net/http"

	"github.com/256dpi/serve"
	"github.com/rs/cors"
)

// DefaultProtector constructs a middleware that by default limits the request
// body size to 4K and allows requests from all origins.
func DefaultProtector() func(http.Handler) http.Handler {
	return NewProtector("4K", nil)
}

// NewProtector constructs a middleware that limits the request body size to
// the passed length and handles CORS for the specified origins. If no
// origins are specified all origins are allowed.
func NewProtector(maxBody string, origins []string) func(http.Handler) http.Handler {
	// parse limit
	limit := serve.MustByteSize(maxBody)

	// ensure origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// prepare cors
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedHeaders:   []string{"Origin", "Accept", "Content-Type", "Authorization"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowCredentials: true,
	})

	return func(next http.Handler) http.Handler {
		return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// limit body
			serve.LimitBody(w, r, limit)

			// call next handler
			next.ServeHTTP(w, r)
		}))
	}
}
