package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes bounds request bodies at 10MB
const DefaultMaxBodyBytes int64 = 10 * 1024 * 1024

// BodyLimit rejects declared oversize bodies and caps the reader for undeclared ones
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":"request body too large"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
