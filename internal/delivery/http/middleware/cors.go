package middleware

import (
	"net/http"
	"strings"
)

const corsAllowMethods = "GET, POST, OPTIONS"

var corsPreflightHeaders = map[string]string{
	"Access-Control-Allow-Methods": corsAllowMethods,
	"Access-Control-Allow-Headers": "Content-Type, Accept, X-Request-ID",
	"Access-Control-Max-Age":       "86400",
}

// CORS allows the listed origins (trailing slashes ignored). Preflight
// requests are answered with 204 whether or not the origin is allowed.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if !allowed[origin] {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)
		h.Add("Vary", "Origin")
		if r.Method == http.MethodOptions {
			for k, v := range corsPreflightHeaders {
				h.Set(k, v)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
