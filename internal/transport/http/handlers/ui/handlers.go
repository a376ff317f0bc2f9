package ui

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/audit"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/plan"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/workmode"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/api"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/shared"
)

// ModeProvider and FeatureProvider are the two lookups the UI surface
// needs; the pgx stores satisfy them in production.
type ModeProvider interface {
	ModeForCompany(ctx context.Context, companyID string) (workmode.Mode, error)
}

type FeatureProvider interface {
	FeaturesForCompany(ctx context.Context, companyID string) ([]plan.Feature, error)
}

type ModeWriter interface {
	SetModeForCompany(ctx context.Context, companyID string, mode workmode.Mode) error
}

type Recorder interface {
	Record(ctx context.Context, companyID, actorID, action, detail, requestID, ip string) error
}

type Handler struct {
	Modes     ModeProvider
	ModeStore ModeWriter
	Features  FeatureProvider
	Catalog   *i18n.Catalog
	Audit     Recorder
}

func NewHandler(modes ModeProvider, writer ModeWriter, features FeatureProvider, catalog *i18n.Catalog, auditor Recorder) *Handler {
	return &Handler{Modes: modes, ModeStore: writer, Features: features, Catalog: catalog, Audit: auditor}
}

// pageTabs declares the ordered tab strip of each composite page. Keys
// are dotted so the visibility table can address individual tabs.
var pageTabs = map[string]struct {
	URL  string
	Tabs []workmode.Tab
}{
	"shifts": {
		URL: "/company/shifts",
		Tabs: []workmode.Tab{
			{Key: "shifts.overview"},
			{Key: "shifts.schedules"},
			{Key: "shifts.templates"},
			{Key: "shifts.requests"},
		},
	},
	"attendance": {
		URL: "/company/timesheet",
		Tabs: []workmode.Tab{
			{Key: "attendance.daily"},
			{Key: "attendance.summary"},
			{Key: "attendance.overtime"},
		},
	},
	"settings": {
		URL: "/company/settings",
		Tabs: []workmode.Tab{
			{Key: "settings.general"},
			{Key: "settings.worktime"},
			{Key: "settings.shiftPatterns"},
			{Key: "settings.roles"},
		},
	},
	"reports": {
		URL: "/company/reports",
		Tabs: []workmode.Tab{
			{Key: "reports.attendance"},
			{Key: "reports.payroll"},
			{Key: "reports.legacyExport"},
		},
	},
}

type bootstrapResponse struct {
	Locale        string           `json:"locale"`
	Scope         string           `json:"scope"`
	Role          string           `json:"role"`
	Permissions   []string         `json:"permissions"`
	WorkMode      string           `json:"workMode,omitempty"`
	WorkModeLabel string           `json:"workModeLabel,omitempty"`
	Features      []plan.Feature   `json:"features,omitempty"`
	Sidebar       []workmode.Group `json:"sidebar,omitempty"`
}

// Bootstrap returns everything a client needs to render its shell after
// sign-in. Platform operators get permissions only; company users also
// get their work mode, plan features, and filtered sidebar.
func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.fail(w, r, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}
	locale := middleware.GetLocale(r.Context())

	resp := bootstrapResponse{
		Locale: string(locale),
		Scope:  user.Scope,
		Role:   user.Role,
	}

	if user.Scope == auth.ScopePlatform {
		resp.Permissions = access.PermittedKeys(access.PlatformPermissions, user.Role)
		api.Success(w, resp, middleware.GetRequestID(r.Context()))
		return
	}

	resp.Permissions = access.PermittedKeys(access.CompanyPermissions, user.Role)

	mode, err := h.Modes.ModeForCompany(r.Context(), user.CompanyID)
	if err != nil {
		slog.Error("work mode lookup failed", "companyId", user.CompanyID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	features, err := h.Features.FeaturesForCompany(r.Context(), user.CompanyID)
	if err != nil {
		slog.Error("feature lookup failed", "companyId", user.CompanyID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	resp.WorkMode = string(mode)
	resp.WorkModeLabel = i18n.EnumLabel("workMode", string(mode), h.Catalog.Translator(locale))
	resp.Features = features
	resp.Sidebar = workmode.SidebarFor(mode)
	api.Success(w, resp, middleware.GetRequestID(r.Context()))
}

type sidebarResponse struct {
	WorkMode string           `json:"workMode"`
	Groups   []workmode.Group `json:"groups"`
}

func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.companyMode(w, r)
	if !ok {
		return
	}
	api.Success(w, sidebarResponse{
		WorkMode: string(mode),
		Groups:   workmode.SidebarFor(mode),
	}, middleware.GetRequestID(r.Context()))
}

type tabsResponse struct {
	Page       string         `json:"page"`
	WorkMode   string         `json:"workMode"`
	Tabs       []workmode.Tab `json:"tabs"`
	HiddenTabs []string       `json:"hiddenTabs"`
}

// Tabs returns the mode-filtered tab strip for a composite page plus the
// embedded tab keys the client must suppress on that page's URL.
func (h *Handler) Tabs(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	definition, ok := pageTabs[page]
	if !ok {
		h.fail(w, r, http.StatusNotFound, "NOT_FOUND")
		return
	}
	mode, found := h.companyMode(w, r)
	if !found {
		return
	}
	api.Success(w, tabsResponse{
		Page:       page,
		WorkMode:   string(mode),
		Tabs:       workmode.VisibleTabs(definition.Tabs, mode),
		HiddenTabs: workmode.HiddenTabsForURL(definition.URL, mode),
	}, middleware.GetRequestID(r.Context()))
}

type permissionsResponse struct {
	Scope       string   `json:"scope"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.fail(w, r, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}
	table := access.CompanyPermissions
	if user.Scope == auth.ScopePlatform {
		table = access.PlatformPermissions
	}
	api.Success(w, permissionsResponse{
		Scope:       user.Scope,
		Role:        user.Role,
		Permissions: access.PermittedKeys(table, user.Role),
	}, middleware.GetRequestID(r.Context()))
}

type featuresResponse struct {
	Features []plan.Feature `json:"features"`
}

func (h *Handler) PlanFeatures(w http.ResponseWriter, r *http.Request) {
	user, ok := h.companyUser(w, r)
	if !ok {
		return
	}
	features, err := h.Features.FeaturesForCompany(r.Context(), user.CompanyID)
	if err != nil {
		slog.Error("feature lookup failed", "companyId", user.CompanyID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	api.Success(w, featuresResponse{Features: features}, middleware.GetRequestID(r.Context()))
}

type updateWorkModeRequest struct {
	WorkMode string `json:"workMode"`
}

type updateWorkModeResponse struct {
	WorkMode string           `json:"workMode"`
	Sidebar  []workmode.Group `json:"sidebar"`
}

// UpdateWorkMode switches the company between fixed hours and flexible
// shifts and returns the re-filtered sidebar so the client can redraw
// immediately.
func (h *Handler) UpdateWorkMode(w http.ResponseWriter, r *http.Request) {
	user, ok := h.companyUser(w, r)
	if !ok {
		return
	}
	var req updateWorkModeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}
	mode, valid := workmode.Parse(req.WorkMode)
	if !valid {
		h.fail(w, r, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}
	if err := h.ModeStore.SetModeForCompany(r.Context(), user.CompanyID, mode); err != nil {
		slog.Error("work mode update failed", "companyId", user.CompanyID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	if h.Audit != nil {
		err := h.Audit.Record(r.Context(), user.CompanyID, user.UserID,
			audit.ActionWorkModeChanged, string(mode), middleware.GetRequestID(r.Context()), r.RemoteAddr)
		if err != nil {
			slog.Warn("audit record failed", "action", audit.ActionWorkModeChanged, "err", err)
		}
	}
	api.Success(w, updateWorkModeResponse{
		WorkMode: string(mode),
		Sidebar:  workmode.SidebarFor(mode),
	}, middleware.GetRequestID(r.Context()))
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

func (h *Handler) companyMode(w http.ResponseWriter, r *http.Request) (workmode.Mode, bool) {
	user, ok := h.companyUser(w, r)
	if !ok {
		return workmode.Default, false
	}
	mode, err := h.Modes.ModeForCompany(r.Context(), user.CompanyID)
	if err != nil {
		slog.Error("work mode lookup failed", "companyId", user.CompanyID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return workmode.Default, false
	}
	return mode, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, code string) {
	translate := h.Catalog.Translator(middleware.GetLocale(r.Context()))
	api.Fail(w, status, code, i18n.ErrorMessage(code, translate), middleware.GetRequestID(r.Context()))
}
