package middleware

import (
	"crypto/subtle"
	"net/http"

	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// APIKeyHeader carries the application key on every API request.
const APIKeyHeader = "apiKey"

// APIKey rejects requests whose apiKey header does not match key.
func APIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				logger.Warn("Rejected request with bad api key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseForbidden(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
