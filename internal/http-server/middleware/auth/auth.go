package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"

	"visit-scheduler/pkg/response"
	"visit-scheduler/pkg/sl"
)

type contextKey string

const principalKey contextKey = "principal_id"

type Claims struct {
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// PrincipalID returns the authenticated principal id placed into the request
// context by New, or "" if the request never passed the middleware.
func PrincipalID(ctx context.Context) string {
	id, _ := ctx.Value(principalKey).(string)
	return id
}

// New validates a Bearer token and stores the principal id (the token
// subject) in the request context. Everything behind it can assume an
// authenticated caller.
func New(log *slog.Logger, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.auth.New"

			header := r.Header.Get("Authorization")
			if header == "" {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHENTICATED), "authorization required"))
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHENTICATED), "invalid authorization header format"))
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				if err != nil {
					log.With(slog.String("op", op)).Debug("Token rejected", sl.Err(err))
				}
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHENTICATED), "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
