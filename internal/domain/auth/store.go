package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type AuthUser struct {
	ID            string
	CompanyID     string
	Role          string
	Password      string
	Status        string
	CompanyStatus string
	MFAEnabled    bool
	MFASecretEnc  []byte
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var out AuthUser
	var companyID *string
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.company_id, u.role, u.password_hash, u.status,
           COALESCE(c.status, ''), u.mfa_enabled, u.mfa_secret_enc
    FROM users u
    LEFT JOIN companies c ON c.id = u.company_id
    WHERE u.email = $1
  `, email).Scan(&out.ID, &companyID, &out.Role, &out.Password, &out.Status,
		&out.CompanyStatus, &out.MFAEnabled, &out.MFASecretEnc)
	if companyID != nil {
		out.CompanyID = *companyID
	}
	return out, err
}

func (s *Store) CreateSession(ctx context.Context, id, userID, tokenHash string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (id, user_id, token_hash, expires_at)
    VALUES ($1,$2,$3,$4)
  `, id, userID, tokenHash, expires)
	return err
}

func (s *Store) SessionValid(ctx context.Context, userID, tokenHash string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sessions
    WHERE user_id = $1 AND token_hash = $2 AND expires_at > now() AND revoked_at IS NULL
  `, userID, tokenHash).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) RevokeSession(ctx context.Context, userID, tokenHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = now() WHERE user_id = $1 AND token_hash = $2", userID, tokenHash)
	return err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}
