package middleware

import "net/http"

// NoContentOptions answers every OPTIONS request with 204 once CORS headers
// have been applied, whether or not it is a preflight.
func NoContentOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
