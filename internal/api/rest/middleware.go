package rest

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Logging logs method, path, status and duration of every request.
func Logging(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info("HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"size", wrapped.size,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", r.RemoteAddr,
			)
		})
	}
}

// Recovery turns handler panics into 500 responses.
func Recovery(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("HTTP handler panicked",
						"panic", p,
						"path", r.URL.Path,
						"stack", string(debug.Stack()))
					writeError(w, apierrors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate requires a valid bearer access token and stores its user ID
// in the request context.
func Authenticate(tokens TokenService, contextManager model.ContextManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if header == "" || token == "" {
				writeError(w, apierrors.ErrMissingAuthorizationToken)
				return
			}

			userID, err := tokens.GetUserID(r.Context(), token)
			if err != nil {
				writeError(w, apierrors.ErrInvalidOrExpiredToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextManager.SetUserIDToContext(r.Context(), userID)))
		})
	}
}
