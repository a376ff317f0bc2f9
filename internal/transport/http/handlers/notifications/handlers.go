package notifications

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/notifications"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/api"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/shared"
)

// Repository is the slice of the notification store this surface needs;
// the pgx store satisfies it in production.
type Repository interface {
	List(ctx context.Context, companyID, userID string, limit, offset int) ([]notifications.Notification, error)
	Count(ctx context.Context, companyID, userID string) (int, error)
	MarkRead(ctx context.Context, companyID, userID, notificationID string) error
}

type Handler struct {
	Store   Repository
	Catalog *i18n.Catalog
	Clock   i18n.Clock
}

func NewHandler(store Repository, catalog *i18n.Catalog, clock i18n.Clock) *Handler {
	if clock == nil {
		clock = i18n.SystemClock
	}
	return &Handler{Store: store, Catalog: catalog, Clock: clock}
}

type listResponse struct {
	Items []notifications.Rendered `json:"items"`
	Total int                      `json:"total"`
}

// List returns the caller's notifications rendered in the request locale.
// The total count also travels in X-Total-Count for clients that paginate
// from headers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.companyUser(w, r)
	if !ok {
		return
	}
	page := shared.ParsePagination(r, 20, 100)

	items, err := h.Store.List(r.Context(), user.CompanyID, user.UserID, page.Limit, page.Offset)
	if err != nil {
		slog.Error("notification list failed", "userId", user.UserID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	total, err := h.Store.Count(r.Context(), user.CompanyID, user.UserID)
	if err != nil {
		slog.Error("notification count failed", "userId", user.UserID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	locale := middleware.GetLocale(r.Context())
	rendered := notifications.Render(items, h.Catalog.Translator(locale), locale, h.Clock)

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, listResponse{Items: rendered, Total: total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := h.companyUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		h.fail(w, r, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}
	if err := h.Store.MarkRead(r.Context(), user.CompanyID, user.UserID, id); err != nil {
		slog.Error("notification mark read failed", "userId", user.UserID, "id", id, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	api.Success(w, map[string]bool{"read": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) companyUser(w http.ResponseWriter, r *http.Request) (auth.UserContext, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.fail(w, r, http.StatusUnauthorized, "UNAUTHORIZED")
		return auth.UserContext{}, false
	}
	if user.Scope != auth.ScopeCompany {
		h.fail(w, r, http.StatusForbidden, "FORBIDDEN")
		return auth.UserContext{}, false
	}
	return user, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, code string) {
	translate := h.Catalog.Translator(middleware.GetLocale(r.Context()))
	api.Fail(w, status, code, i18n.ErrorMessage(code, translate), middleware.GetRequestID(r.Context()))
}
