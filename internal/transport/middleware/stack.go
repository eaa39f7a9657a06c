package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/tagmatch-backend/internal/config"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware so that Chain(mw1, mw2)(h) is mw1(mw2(h)):
// the first one given runs outermost.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// Stack is the chain every matching endpoint runs behind. Request IDs are
// assigned first so that the access log, panic reports and 429 responses
// all carry one. perMinute <= 0 turns rate limiting off.
func Stack(logger *slog.Logger, cors config.CORSConfig, limiter *RateLimiter, perMinute int) Middleware {
	return Chain(
		RequestID(),
		Logger(logger),
		Recovery(logger),
		CORS(cors),
		limiter.Limit(perMinute),
	)
}
