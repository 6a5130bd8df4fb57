package middleware

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/configuration"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
)

// WithActor resolves the acting user from the actor header set by the
// authentication gateway upstream. Requests without a resolvable actor are
// rejected before reaching any handler.
func WithActor(users user.Repository) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(conf.ActorIDHeader)
			if raw == "" {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing actor header", nil)
				return
			}
			actorID, err := uuid.Parse(raw)
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid actor id", nil)
				return
			}

			u, err := users.GetByID(r.Context(), actorID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "unknown actor", nil)
					return
				}
				composables.UseLogger(r.Context()).WithError(err).Error("failed to load actor")
				_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(composables.WithUser(r.Context(), u)))
		})
	}
}
