package platform

import (
	"log/slog"
	"net/http"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/audit"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/metrics"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/api"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/shared"
)

// Handler serves the platform operator surface: service metrics and the
// auth/policy audit trail.
type Handler struct {
	Metrics *metrics.Collector
	Audit   *audit.Service
	Catalog *i18n.Catalog
}

func NewHandler(collector *metrics.Collector, auditor *audit.Service, catalog *i18n.Catalog) *Handler {
	return &Handler{Metrics: collector, Audit: auditor, Catalog: catalog}
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) AuditEvents(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	companyID := r.URL.Query().Get("companyId")
	action := r.URL.Query().Get("action")

	events, err := h.Audit.List(r.Context(), companyID, action, page.Limit, page.Offset)
	if err != nil {
		slog.Error("audit list failed", "err", err)
		translate := h.Catalog.Translator(middleware.GetLocale(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			i18n.ErrorMessage("INTERNAL_ERROR", translate), middleware.GetRequestID(r.Context()))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
