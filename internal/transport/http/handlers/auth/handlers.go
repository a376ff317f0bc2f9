package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/audit"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/crypto"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/api"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/shared"
)

const sessionTTL = 24 * time.Hour

// UserStore is the slice of the auth store the login/logout flow needs;
// the pgx store satisfies it in production.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (auth.AuthUser, error)
	CreateSession(ctx context.Context, id, userID, tokenHash string, expires time.Time) error
	RevokeSession(ctx context.Context, userID, tokenHash string) error
	UpdateLastLogin(ctx context.Context, userID string) error
}

type Recorder interface {
	Record(ctx context.Context, companyID, actorID, action, detail, requestID, ip string) error
}

type Handler struct {
	Store     UserStore
	Catalog   *i18n.Catalog
	Cipher    *crypto.Cipher
	Audit     Recorder
	JWTSecret string
}

func NewHandler(store UserStore, catalog *i18n.Catalog, cipher *crypto.Cipher, auditor Recorder, jwtSecret string) *Handler {
	return &Handler{Store: store, Catalog: catalog, Cipher: cipher, Audit: auditor, JWTSecret: jwtSecret}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId,omitempty"`
	Scope     string `json:"scope"`
	Role      string `json:"role"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	v := shared.NewValidator()
	v.Require("email", req.Email)
	v.Require("password", req.Password)
	if !v.Valid() {
		h.fail(w, r, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		h.loginFailed(r, "", req.Email)
		h.fail(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS")
		return
	}
	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		h.loginFailed(r, user.ID, req.Email)
		h.fail(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS")
		return
	}
	switch user.Status {
	case "active":
	case "locked":
		h.fail(w, r, http.StatusForbidden, "ACCOUNT_LOCKED")
		return
	default:
		h.loginFailed(r, user.ID, req.Email)
		h.fail(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS")
		return
	}
	if user.CompanyStatus == "suspended" {
		h.fail(w, r, http.StatusForbidden, "COMPANY_SUSPENDED")
		return
	}

	if user.MFAEnabled {
		if req.OTP == "" {
			h.fail(w, r, http.StatusUnauthorized, "MFA_REQUIRED")
			return
		}
		secret, err := h.Cipher.OpenString(user.MFASecretEnc)
		if err != nil || !totp.Validate(req.OTP, secret) {
			h.loginFailed(r, user.ID, req.Email)
			h.fail(w, r, http.StatusUnauthorized, "MFA_INVALID")
			return
		}
	}

	scope := auth.ScopeCompany
	if access.IsPlatformRole(user.Role) {
		scope = auth.ScopePlatform
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(sessionTTL)
	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Scope:     scope,
		Role:      user.Role,
		SessionID: sessionID,
	}, sessionTTL)
	if err != nil {
		slog.Error("token generation failed", "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}

	if err := h.Store.CreateSession(r.Context(), sessionID, user.ID, auth.HashToken(token), expiresAt); err != nil {
		slog.Error("session create failed", "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("last login update failed", "userId", user.ID, "err", err)
	}
	h.record(r, user.CompanyID, user.ID, audit.ActionLogin, "")

	api.Success(w, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Scope:     scope,
		Role:      user.Role,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.fail(w, r, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.Store.RevokeSession(r.Context(), user.UserID, auth.HashToken(raw)); err != nil {
		slog.Error("session revoke failed", "userId", user.UserID, "err", err)
		h.fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
		return
	}
	h.record(r, user.CompanyID, user.UserID, audit.ActionLogout, "")
	api.Success(w, map[string]bool{"loggedOut": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) loginFailed(r *http.Request, userID, email string) {
	h.record(r, "", userID, audit.ActionLoginFailed, email)
}

func (h *Handler) record(r *http.Request, companyID, actorID, action, detail string) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), companyID, actorID, action, detail,
		middleware.GetRequestID(r.Context()), r.RemoteAddr)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, code string) {
	translate := h.Catalog.Translator(middleware.GetLocale(r.Context()))
	api.Fail(w, status, code, i18n.ErrorMessage(code, translate), middleware.GetRequestID(r.Context()))
}
