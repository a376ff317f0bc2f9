package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionLogin            = "auth.login"
	ActionLoginFailed      = "auth.login_failed"
	ActionLogout           = "auth.logout"
	ActionPermissionDenied = "policy.permission_denied"
	ActionWorkModeChanged  = "policy.work_mode_changed"
)

type Event struct {
	ID        string `json:"id"`
	ActorID   string `json:"actorId"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	RequestID string `json:"requestId"`
	IP        string `json:"ip"`
	CreatedAt any    `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, companyID, actorID, action, detail, requestID, ip string) error {
	var companyArg any
	if companyID != "" {
		companyArg = companyID
	}
	var actorArg any
	if actorID != "" {
		actorArg = actorID
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (company_id, actor_user_id, action, detail, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, companyArg, actorArg, action, detail, requestID, ip)
	return err
}

func (s *Service) List(ctx context.Context, companyID, action string, limit, offset int) ([]Event, error) {
	query := "SELECT id, COALESCE(actor_user_id::text, ''), action, detail, request_id, ip, created_at FROM audit_events WHERE 1=1"
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if action != "" {
		args = append(args, action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.ActorID, &event.Action, &event.Detail, &event.RequestID, &event.IP, &event.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, rows.Err()
}
