package middleware

import (
	"context"
	"net/http"

	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/requestctx"
)

// Locale resolves the request locale once per request: an explicit ?lang=
// override wins, then Accept-Language, then the configured default.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	fallback := i18n.ParseLocale(defaultLocale, i18n.LocaleVI)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := fallback
			if lang := r.URL.Query().Get("lang"); lang != "" {
				locale = i18n.ParseLocale(lang, fallback)
			} else if header := r.Header.Get("Accept-Language"); header != "" {
				locale = i18n.ParseLocale(header, fallback)
			}
			ctx := requestctx.WithLocale(r.Context(), string(locale))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetLocale(ctx context.Context) i18n.Locale {
	if raw := requestctx.GetLocale(ctx); raw != "" {
		return i18n.Locale(raw)
	}
	return i18n.LocaleVI
}
