package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
)

type fakeRecorder struct {
	actions []string
	details []string
}

func (f *fakeRecorder) Record(_ context.Context, _, _, action, detail, _, _ string) error {
	f.actions = append(f.actions, action)
	f.details = append(f.details, detail)
	return nil
}

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.LocaleEN)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return catalog
}

func serveGuarded(t *testing.T, guard *Guard, mw func(http.Handler) http.Handler, user *auth.UserContext) *httptest.ResponseRecorder {
	t.Helper()
	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		req = req.WithContext(WithUser(req.Context(), *user))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusNoContent && !called {
		t.Fatal("handler reported success without being called")
	}
	return rec
}

func TestGuardAllowsPermittedRole(t *testing.T) {
	guard := NewGuard(testCatalog(t), nil)
	user := auth.UserContext{UserID: "u1", CompanyID: "c1", Scope: auth.ScopeCompany, Role: access.RoleManager}

	rec := serveGuarded(t, guard, guard.RequireCompanyPermission(access.PermLeaveApprove), &user)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestGuardDeniesMissingPermission(t *testing.T) {
	auditor := &fakeRecorder{}
	guard := NewGuard(testCatalog(t), auditor)
	user := auth.UserContext{UserID: "u1", CompanyID: "c1", Scope: auth.ScopeCompany, Role: access.RoleEmployee}

	rec := serveGuarded(t, guard, guard.RequireCompanyPermission(access.PermPayrollRun), &user)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if len(auditor.actions) != 1 || auditor.details[0] != access.PermPayrollRun {
		t.Fatalf("expected one audited denial for %s, got %v", access.PermPayrollRun, auditor.details)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Error.Code != "FORBIDDEN" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Error.Message == "" || body.Error.Message == "errors.FORBIDDEN" {
		t.Fatalf("message not localized: %q", body.Error.Message)
	}
}

func TestGuardDeniesCrossScope(t *testing.T) {
	guard := NewGuard(testCatalog(t), nil)

	platformUser := auth.UserContext{UserID: "u1", Scope: auth.ScopePlatform, Role: access.RoleAdmin}
	rec := serveGuarded(t, guard, guard.RequireCompanyPermission(access.PermEmployeesRead), &platformUser)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("platform role passed company guard: %d", rec.Code)
	}

	companyUser := auth.UserContext{UserID: "u2", CompanyID: "c1", Scope: auth.ScopeCompany, Role: access.RoleCompanyAdmin}
	rec = serveGuarded(t, guard, guard.RequirePlatformPermission(access.PermMetricsRead), &companyUser)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("company role passed platform guard: %d", rec.Code)
	}
}

func TestGuardRejectsAnonymous(t *testing.T) {
	guard := NewGuard(testCatalog(t), nil)
	rec := serveGuarded(t, guard, guard.RequireCompanyPermission(access.PermEmployeesRead), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGuardLocalizesDenialMessage(t *testing.T) {
	guard := NewGuard(testCatalog(t), nil)
	user := auth.UserContext{UserID: "u1", CompanyID: "c1", Scope: auth.ScopeCompany, Role: access.RoleEmployee}

	handler := guard.RequireCompanyPermission(access.PermPayrollRun)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/?lang=vi", nil)
	req = req.WithContext(WithUser(req.Context(), user))

	rec := httptest.NewRecorder()
	Locale("en")(handler).ServeHTTP(rec, req)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Message != "Bạn không có quyền thực hiện thao tác này." {
		t.Fatalf("expected Vietnamese denial, got %q", body.Error.Message)
	}
}
