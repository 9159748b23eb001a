package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/eventhub-go/internal/crypto"
	"github.com/eventhub/eventhub-go/internal/model"
)

type contextKey string

const authUserKey contextKey = "authUser"

// UserLookup resolves a token subject to a stored account.
type UserLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header, checks the subject account still exists, and
// attaches the caller identity to the request context. Any failure ends the
// request with 401 before handler code runs.
func JWTAuth(secret string, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if _, err := users.GetByID(r.Context(), id); err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			caller := model.AuthUser{
				ID:    id,
				Email: claims.Email,
				Role:  model.Role(claims.Role),
			}

			ctx := context.WithValue(r.Context(), authUserKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthUserFromContext extracts the authenticated caller from the request
// context.
func AuthUserFromContext(ctx context.Context) (model.AuthUser, bool) {
	caller, ok := ctx.Value(authUserKey).(model.AuthUser)
	return caller, ok
}

// WithAuthUser attaches a caller identity to a context. Intended for tests.
func WithAuthUser(ctx context.Context, caller model.AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, caller)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
