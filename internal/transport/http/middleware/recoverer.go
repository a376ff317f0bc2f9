package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
)

func Recoverer(catalog *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"requestId", GetRequestID(r.Context()),
						"stack", string(debug.Stack()),
					)
					failLocalized(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", catalog)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
