package middleware

import (
	"net/http"

	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/api"
)

// failLocalized resolves the error code against the request locale before
// writing the envelope, so middleware rejections read the same as handler
// rejections.
func failLocalized(w http.ResponseWriter, r *http.Request, status int, code string, catalog *i18n.Catalog) {
	translate := catalog.Translator(GetLocale(r.Context()))
	message := i18n.ErrorMessage(code, translate)
	api.Fail(w, status, code, message, GetRequestID(r.Context()))
}
