package http

import (
	"context"
	"net/http"
	"strings"

	"bigbang-quiz-service/internal/auth"
)

type authKey struct{}

// requireAuth verifies the Bearer token and stores the resulting identity in
// the request context. Every guarded service call receives that identity
// explicitly; nothing downstream reads headers or globals.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			a.writeJSON(w, http.StatusUnauthorized, errorBody{Message: "token ausente"})
			return
		}
		actor, err := a.tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			a.writeJSON(w, http.StatusUnauthorized, errorBody{Message: "token inválido"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authKey{}, actor)))
	})
}

// actorFrom retrieves the identity placed by requireAuth. The zero Context is
// returned on routes that skipped the middleware.
func actorFrom(ctx context.Context) auth.Context {
	actor, _ := ctx.Value(authKey{}).(auth.Context)
	return actor
}
