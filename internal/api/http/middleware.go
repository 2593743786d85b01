package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/security"
)

type contextKey string

const (
	userIDKey    contextKey = "user-id"
	userEmailKey contextKey = "user-email"
)

// UserIDFromContext returns the authenticated caller's id. Zero means the
// request never passed the auth middleware.
func UserIDFromContext(ctx context.Context) int32 {
	id, _ := ctx.Value(userIDKey).(int32)
	return id
}

// UserEmailFromContext returns the authenticated caller's email claim.
func UserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

// AuthMiddleware validates the bearer token and injects the user id into
// the request context. Token type must be access; refresh tokens are only
// good at the refresh endpoint.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, r, domain.E(domain.CodeUnauthorized, "authorization header required"))
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				respondError(w, r, domain.E(domain.CodeUnauthorized, "bearer token required"))
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				respondError(w, r, domain.E(domain.CodeUnauthorized, "invalid or expired token"))
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, r, domain.E(domain.CodeUnauthorized, "access token required"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, userEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger assigns a request id and logs one line per request with
// method, path, and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
