package middleware

import (
	"net/http"
	"strings"
)

// CORS allows browser clients on configured origins to call the API. The
// origin list comes from server config as a comma-separated string; "*" or an
// empty list means any origin. The app has no cookie-based auth so a
// permissive default is fine.
func CORS(allowedOrigins string) func(next http.Handler) http.Handler {
	wildcard := false
	origins := make(map[string]struct{})
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			wildcard = true
			continue
		}
		origins[origin] = struct{}{}
	}
	if len(origins) == 0 {
		wildcard = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origin != "" {
				if _, allowed := origins[origin]; allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Trace-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
