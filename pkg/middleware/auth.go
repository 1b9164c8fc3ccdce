package middleware

import (
	"net/http"
	"strings"

	"lumiere/pkg/auth"
	"lumiere/pkg/logger"
)

// Auth rejects requests that do not carry a valid bearer session token.
func Auth(sessionSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)

			if token == "" {
				rejectUnauthorized(w, log, r, "Missing Authorization header")
				return
			}

			if _, err := auth.ValidateToken(token, sessionSecret); err != nil {
				rejectUnauthorized(w, log, r, "Invalid session token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if found {
		return token
	}

	return ""
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	requestID := ""
	if rid := r.Context().Value(RequestIDKey); rid != nil {
		requestID = rid.(string)
	}

	log.Warn("Session verification failed",
		"request_id", requestID,
		"reason", reason,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}
