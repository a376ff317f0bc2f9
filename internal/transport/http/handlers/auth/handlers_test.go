package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/audit"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/crypto"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/requestctx"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
)

const testSecret = "unit-test-secret"

type fakeStore struct {
	user     auth.AuthUser
	findErr  error
	sessions []string
	revoked  []string
}

func (f *fakeStore) FindUserByEmail(context.Context, string) (auth.AuthUser, error) {
	return f.user, f.findErr
}

func (f *fakeStore) CreateSession(_ context.Context, id, _, _ string, _ time.Time) error {
	f.sessions = append(f.sessions, id)
	return nil
}

func (f *fakeStore) RevokeSession(_ context.Context, _, tokenHash string) error {
	f.revoked = append(f.revoked, tokenHash)
	return nil
}

func (f *fakeStore) UpdateLastLogin(context.Context, string) error { return nil }

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _, _, action, _, _, _ string) error {
	f.actions = append(f.actions, action)
	return nil
}

func newTestHandler(t *testing.T, store *fakeStore, auditor *fakeAudit) *Handler {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.LocaleEN)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	cipher, err := crypto.NewCipher("")
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	return NewHandler(store, catalog, cipher, auditor, testSecret)
}

func activeUser(t *testing.T, password string) auth.AuthUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return auth.AuthUser{
		ID:            "u1",
		CompanyID:     "c1",
		Role:          access.RoleManager,
		Password:      hash,
		Status:        "active",
		CompanyStatus: "active",
	}
}

func loginRequestWith(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	return req.WithContext(requestctx.WithLocale(req.Context(), "en"))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message == "" || strings.HasPrefix(envelope.Error.Message, "errors.") {
		t.Fatalf("error message not localized: %q", envelope.Error.Message)
	}
	return envelope.Error.Code
}

func TestLoginSuccess(t *testing.T) {
	store := &fakeStore{user: activeUser(t, "s3cret")}
	auditor := &fakeAudit{}
	h := newTestHandler(t, store, auditor)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"manager@demo.vn","password":"s3cret"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data loginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Token == "" {
		t.Fatal("expected a token")
	}
	if envelope.Data.Scope != auth.ScopeCompany || envelope.Data.Role != access.RoleManager {
		t.Fatalf("unexpected session data: %+v", envelope.Data)
	}

	claims, err := auth.ParseToken(testSecret, envelope.Data.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "u1" || claims.CompanyID != "c1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(store.sessions) != 1 || store.sessions[0] != claims.SessionID {
		t.Fatalf("session row mismatch: %v vs %s", store.sessions, claims.SessionID)
	}
	if len(auditor.actions) != 1 || auditor.actions[0] != audit.ActionLogin {
		t.Fatalf("audit = %v", auditor.actions)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := &fakeStore{user: activeUser(t, "s3cret")}
	auditor := &fakeAudit{}
	h := newTestHandler(t, store, auditor)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"manager@demo.vn","password":"wrong"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Fatalf("code = %q", code)
	}
	if len(auditor.actions) != 1 || auditor.actions[0] != audit.ActionLoginFailed {
		t.Fatalf("audit = %v", auditor.actions)
	}
	if len(store.sessions) != 0 {
		t.Fatal("no session should be created")
	}
}

func TestLoginLockedAccount(t *testing.T) {
	user := activeUser(t, "s3cret")
	user.Status = "locked"
	h := newTestHandler(t, &fakeStore{user: user}, &fakeAudit{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"manager@demo.vn","password":"s3cret"}`))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "ACCOUNT_LOCKED" {
		t.Fatalf("code = %q", code)
	}
}

func TestLoginSuspendedCompany(t *testing.T) {
	user := activeUser(t, "s3cret")
	user.CompanyStatus = "suspended"
	h := newTestHandler(t, &fakeStore{user: user}, &fakeAudit{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"manager@demo.vn","password":"s3cret"}`))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "COMPANY_SUSPENDED" {
		t.Fatalf("code = %q", code)
	}
}

func TestLoginRequiresOTPWhenEnrolled(t *testing.T) {
	user := activeUser(t, "s3cret")
	user.MFAEnabled = true
	user.MFASecretEnc = []byte("JBSWY3DPEHPK3PXP")
	h := newTestHandler(t, &fakeStore{user: user}, &fakeAudit{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"manager@demo.vn","password":"s3cret"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "MFA_REQUIRED" {
		t.Fatalf("code = %q", code)
	}
}

func TestLoginRejectsBadOTP(t *testing.T) {
	user := activeUser(t, "s3cret")
	user.MFAEnabled = true
	user.MFASecretEnc = []byte("JBSWY3DPEHPK3PXP")
	h := newTestHandler(t, &fakeStore{user: user}, &fakeAudit{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"manager@demo.vn","password":"s3cret","otp":"000000"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "MFA_INVALID" {
		t.Fatalf("code = %q", code)
	}
}

func TestLoginValidatesInput(t *testing.T) {
	h := newTestHandler(t, &fakeStore{}, &fakeAudit{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"","password":""}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q", code)
	}
}

func TestLoginPlatformUserGetsPlatformScope(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store := &fakeStore{user: auth.AuthUser{
		ID:       "p1",
		Role:     access.RoleAdmin,
		Password: hash,
		Status:   "active",
	}}
	h := newTestHandler(t, store, &fakeAudit{})

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequestWith(`{"email":"ops@platform.vn","password":"s3cret"}`))

	var envelope struct {
		Data loginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Scope != auth.ScopePlatform {
		t.Fatalf("scope = %q", envelope.Data.Scope)
	}
	if envelope.Data.CompanyID != "" {
		t.Fatalf("platform user should have no company, got %q", envelope.Data.CompanyID)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	store := &fakeStore{}
	auditor := &fakeAudit{}
	h := newTestHandler(t, store, auditor)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	ctx := middleware.WithUser(req.Context(), auth.UserContext{
		UserID:    "u1",
		CompanyID: "c1",
		Scope:     auth.ScopeCompany,
		Role:      access.RoleManager,
	})
	rec := httptest.NewRecorder()
	h.Logout(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(store.revoked) != 1 || store.revoked[0] != auth.HashToken("some-token") {
		t.Fatalf("revoked = %v", store.revoked)
	}
	if len(auditor.actions) != 1 || auditor.actions[0] != audit.ActionLogout {
		t.Fatalf("audit = %v", auditor.actions)
	}
}
