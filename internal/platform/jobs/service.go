package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamabee-group/tama-hr-sub006/internal/platform/config"
)

// Service runs the periodic housekeeping this sub-service owns: purging
// read notifications past the retention window and expiring stale
// sessions.
type Service struct {
	DB  *pgxpool.Pool
	Cfg config.Config
}

func New(db *pgxpool.Pool, cfg config.Config) *Service {
	return &Service{DB: db, Cfg: cfg}
}

func (s *Service) Start(ctx context.Context) {
	if s.Cfg.RetentionInterval > 0 {
		go s.scheduleRetention(ctx, s.Cfg.RetentionInterval)
	}
}

func (s *Service) scheduleRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunRetention(ctx); err != nil {
				slog.Warn("retention run failed", "err", err)
			}
		}
	}
}

func (s *Service) RunRetention(ctx context.Context) error {
	cutoff := time.Now().Add(-s.Cfg.NotificationRetention)
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM notifications
    WHERE read_at IS NOT NULL AND created_at < $1
  `, cutoff)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		slog.Info("purged read notifications", "count", tag.RowsAffected())
	}

	_, err = s.DB.Exec(ctx, "DELETE FROM sessions WHERE expires_at < now() - interval '7 days'")
	return err
}
