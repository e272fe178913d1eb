package middleware

import (
	"net/http"

	"github.com/JoeShih716/go-mem-point/internal/httpx"
	"github.com/JoeShih716/go-mem-point/internal/logger"
)

func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic",
						"err", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", RequestIDFrom(r.Context()),
					)
					httpx.InternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
