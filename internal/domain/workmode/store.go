package workmode

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ModeForCompany returns the company's configured work mode. Rows written
// before the column existed fall back to the default.
func (s *Store) ModeForCompany(ctx context.Context, companyID string) (Mode, error) {
	var raw string
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(work_mode, '')
    FROM companies
    WHERE id = $1
  `, companyID).Scan(&raw)
	if err != nil {
		return Default, err
	}
	mode, _ := Parse(raw)
	return mode, nil
}

func (s *Store) SetModeForCompany(ctx context.Context, companyID string, mode Mode) error {
	_, err := s.DB.Exec(ctx, "UPDATE companies SET work_mode = $1 WHERE id = $2", string(mode), companyID)
	return err
}
