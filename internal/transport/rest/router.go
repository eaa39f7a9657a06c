package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/tagmatch-backend/internal/transport/middleware"
)

// NewRouter mounts health and matching endpoints behind mw.
func NewRouter(health *HealthHandler, matching *MatchingHandler, mw middleware.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	r.Route("/requesters/{id}", func(r chi.Router) {
		r.Get("/preference", matching.GetPreference)
		r.Post("/recommendation", matching.Recommend)
		r.Post("/revisit-declined", matching.RevisitDeclined)
	})

	r.Post("/matches/respond", matching.Respond)
	r.Patch("/matches", matching.UpdateMatch)
	r.Delete("/matches", matching.DeleteMatches)

	r.Get("/profiles/{id}/matches", matching.RetrieveMatches)

	if mw == nil {
		return r
	}
	return mw(r)
}
