package tools

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"
)

var tooManyRequests, _ = json.Marshal(map[string]interface{}{
	"error": map[string]interface{}{
		"status": http.StatusTooManyRequests,
		"code":   "too_many_requests",
		"title":  http.StatusText(http.StatusTooManyRequests),
		"detail": "rate limit exceeded",
	},
})

// NewThrottle constructs a middleware that allows at most the specified rate
// of requests per second with the specified burst. Requests above the limit
// are answered with 429. A non-positive rate disables the throttle.
func NewThrottle(perSecond float64, burst int) func(http.Handler) http.Handler {
	// check rate
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	// ensure burst
	if burst <= 0 {
		burst = int(perSecond)
		if burst < 1 {
			burst = 1
		}
	}

	// create limiter
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// check limiter
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write(tooManyRequests)
				return
			}

			// call next handler
			next.ServeHTTP(w, r)
		})
	}
}
