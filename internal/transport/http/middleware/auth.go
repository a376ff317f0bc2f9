package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
)

type userContextKey struct{}

// SessionChecker is the slice of the auth store the middleware needs.
type SessionChecker interface {
	SessionValid(ctx context.Context, userID, tokenHash string) (bool, error)
}

type Auth struct {
	Secret   string
	Sessions SessionChecker
	Catalog  *i18n.Catalog
}

func NewAuth(secret string, sessions SessionChecker, catalog *i18n.Catalog) *Auth {
	return &Auth{Secret: secret, Sessions: sessions, Catalog: catalog}
}

// Middleware verifies the bearer token and that its session has not been
// revoked, then stashes the user context for handlers downstream.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			failLocalized(w, r, http.StatusUnauthorized, "UNAUTHORIZED", a.Catalog)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ParseToken(a.Secret, raw)
		if err != nil {
			failLocalized(w, r, http.StatusUnauthorized, "SESSION_EXPIRED", a.Catalog)
			return
		}

		valid, err := a.Sessions.SessionValid(r.Context(), claims.UserID, auth.HashToken(raw))
		if err != nil || !valid {
			failLocalized(w, r, http.StatusUnauthorized, "SESSION_EXPIRED", a.Catalog)
			return
		}

		user := auth.UserContext{
			UserID:    claims.UserID,
			CompanyID: claims.CompanyID,
			Scope:     claims.Scope,
			Role:      claims.Role,
			SessionID: claims.SessionID,
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, user auth.UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(userContextKey{}).(auth.UserContext)
	return user, ok
}
