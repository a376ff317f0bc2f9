package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/audit"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
)

// Recorder is the slice of the audit service the access guard needs.
type Recorder interface {
	Record(ctx context.Context, companyID, actorID, action, detail, requestID, ip string) error
}

// Guard rejects requests whose role does not carry the required permission.
// Decisions come from the static role tables, never from the database.
type Guard struct {
	Catalog *i18n.Catalog
	Audit   Recorder
}

func NewGuard(catalog *i18n.Catalog, auditor Recorder) *Guard {
	return &Guard{Catalog: catalog, Audit: auditor}
}

func (g *Guard) RequirePlatformPermission(permission string) func(http.Handler) http.Handler {
	return g.require(permission, auth.ScopePlatform, access.HasPlatformPermission)
}

func (g *Guard) RequireCompanyPermission(permission string) func(http.Handler) http.Handler {
	return g.require(permission, auth.ScopeCompany, access.HasCompanyPermission)
}

func (g *Guard) require(permission, scope string, allowed func(role, permission string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				failLocalized(w, r, http.StatusUnauthorized, "UNAUTHORIZED", g.Catalog)
				return
			}
			if user.Scope != scope || !allowed(user.Role, permission) {
				g.deny(r, user, permission)
				failLocalized(w, r, http.StatusForbidden, "FORBIDDEN", g.Catalog)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) deny(r *http.Request, user auth.UserContext, permission string) {
	if g.Audit == nil {
		return
	}
	err := g.Audit.Record(r.Context(), user.CompanyID, user.UserID,
		audit.ActionPermissionDenied, permission, GetRequestID(r.Context()), r.RemoteAddr)
	if err != nil {
		slog.Warn("audit record failed", "action", audit.ActionPermissionDenied, "err", err)
	}
}
