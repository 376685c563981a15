package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	UserID   string
	EntityID string
	Role     string
}

// RequireAuth validates the bearer token and loads the acting user, entity
// scope, and role into the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed user claim",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid token claims")
				return
			}
			ctx = requestcontext.WithUserID(ctx, userID)

			if claims.EntityID != "" {
				entityID, err := id.ParseEntityID(claims.EntityID)
				if err != nil {
					writeUnauthorized(w, "Invalid token claims")
					return
				}
				ctx = requestcontext.WithEntityID(ctx, entityID)
			}

			role := requestcontext.UserRole(claims.Role)
			if role.IsValid() {
				ctx = requestcontext.WithRole(ctx, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to the listed roles. RequireAuth must run first.
func RequireRole(logger *slog.Logger, roles ...requestcontext.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actual := requestcontext.Role(ctx)
			for _, allowed := range roles {
				if actual == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.WarnContext(ctx, "forbidden - role not permitted",
				"request_id", requestcontext.RequestID(ctx),
				"role", string(actual),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Role not permitted for this resource"}`))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
