package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

type ContextKey string

const ListIDKey ContextKey = "listID"

const listIDSessionKey = "listID"

// LoadList puts the session's candidate list ID into the request context, creating
// one for new or tampered sessions. It must run after sessionManager.LoadAndSave.
func LoadList(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			listID, err := uuid.Parse(sessionManager.GetString(r.Context(), listIDSessionKey))
			if err != nil {
				listID = uuid.New()
				sessionManager.Put(r.Context(), listIDSessionKey, listID.String())
				slog.Debug("new candidate list", "list_id", listID)
			}

			ctx := context.WithValue(r.Context(), ListIDKey, listID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetListIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(ListIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}
