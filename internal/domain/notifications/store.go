package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Notification struct {
	ID        string
	Code      string
	Params    map[string]any
	CreatedAt time.Time
	ReadAt    *time.Time
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, companyID, userID, code string, params map[string]any) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO notifications (company_id, user_id, code, params)
    VALUES ($1,$2,$3,$4)
  `, companyID, userID, code, payload)
	return err
}

func (s *Store) Count(ctx context.Context, companyID, userID string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE company_id = $1 AND user_id = $2
  `, companyID, userID).Scan(&total)
	return total, err
}

func (s *Store) List(ctx context.Context, companyID, userID string, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, code, params, created_at, read_at
    FROM notifications
    WHERE company_id = $1 AND user_id = $2
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, companyID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var item Notification
		var payload []byte
		if err := rows.Scan(&item.ID, &item.Code, &payload, &item.CreatedAt, &item.ReadAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &item.Params); err != nil {
				item.Params = nil
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, companyID, userID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = now()
    WHERE id = $1 AND company_id = $2 AND user_id = $3 AND read_at IS NULL
  `, notificationID, companyID, userID)
	return err
}
