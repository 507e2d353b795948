package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/neuroautomation/neuro-backend/internal/core"
)

// Recoverer recovers from panics and logs the error.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					log.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("stack", string(debug.Stack())),
						zap.String("request_id", GetRequestID(r)),
					)
					appErr := core.NewAppError(core.ErrInternal, "internal server error")
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(appErr.Code.HTTPStatus())
					json.NewEncoder(w).Encode(appErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
