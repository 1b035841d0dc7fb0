package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/civicdesk/complaint-server/internal/workflow"
)

type contextKey string

const actorKey contextKey = "actor"

// WithAuth parses a Bearer token when present and stores the resolved
// actor in the request context. Requests without a token pass through as
// unauthenticated viewers; route gates decide whether that is enough.
func WithAuth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"error": "Invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, `{"error": "Invalid token claims"}`, http.StatusUnauthorized)
				return
			}

			actor := workflow.Actor{Authenticated: true}
			if sub, ok := claims["sub"].(string); ok {
				actor.ID = sub
			}
			if role, ok := claims["role"].(string); ok {
				actor.Role = workflow.Role(role)
			}
			if name, ok := claims["name"].(string); ok {
				actor.Name = name
			}
			if actor.ID == "" || !actor.Role.Valid() {
				http.Error(w, `{"error": "Invalid token claims"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

// ActorFromContext returns the actor stored by WithAuth, or the zero
// unauthenticated actor.
func ActorFromContext(ctx context.Context) workflow.Actor {
	if actor, ok := ctx.Value(actorKey).(workflow.Actor); ok {
		return actor
	}
	return workflow.Actor{}
}
