package ui

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"regimen/domain/core"
)

type contextKey string

const userIDKey contextKey = "regimen.userID"

// userContext resolves the acting user for a request. Clients may pass
// X-User-ID; anything else runs as the install's default account.
func (a *App) userContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := a.defaultUserID

		if header := r.Header.Get("X-User-ID"); header != "" {
			parsed, err := uuid.Parse(header)
			if err != nil {
				respondJSON(w, http.StatusBadRequest, map[string]interface{}{
					"error": "X-User-ID must be a valid UUID",
				})
				return
			}
			userID = core.UserID(parsed.String())
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromRequest returns the user resolved by userContext
func userFromRequest(r *http.Request) core.UserID {
	if id, ok := r.Context().Value(userIDKey).(core.UserID); ok {
		return id
	}
	return ""
}
