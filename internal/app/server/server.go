package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/audit"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/notifications"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/plan"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/workmode"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/config"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/crypto"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/db"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/jobs"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/metrics"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/api"
	authhandler "github.com/tamabee-group/tama-hr-sub006/internal/transport/http/handlers/auth"
	notificationhandler "github.com/tamabee-group/tama-hr-sub006/internal/transport/http/handlers/notifications"
	platformhandler "github.com/tamabee-group/tama-hr-sub006/internal/transport/http/handlers/platform"
	uihandler "github.com/tamabee-group/tama-hr-sub006/internal/transport/http/handlers/ui"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
)

func Run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			return err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			return err
		}
	}

	catalog, err := i18n.NewCatalog(i18n.ParseLocale(cfg.DefaultLocale, i18n.LocaleVI))
	if err != nil {
		return err
	}
	collector := metrics.New()
	catalog.OnMiss = func(locale i18n.Locale, key string) {
		collector.RecordTranslationMiss()
		slog.Warn("translation miss", "locale", string(locale), "key", key)
	}
	cipher, err := crypto.NewCipher(cfg.DataEncryptionKey)
	if err != nil {
		return err
	}

	auditor := audit.New(pool)

	jobs.New(pool, cfg).Start(ctx)

	router := newRouter(cfg, pool, catalog, cipher, collector, auditor)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func newRouter(cfg config.Config, pool *pgxpool.Pool, catalog *i18n.Catalog, cipher *crypto.Cipher, collector *metrics.Collector, auditor *audit.Service) http.Handler {
	authStore := auth.NewStore(pool)
	modeStore := workmode.NewStore(pool)
	planStore := plan.NewStore(pool)
	notificationStore := notifications.NewStore(pool)

	authMW := middleware.NewAuth(cfg.JWTSecret, authStore, catalog)
	guard := middleware.NewGuard(catalog, auditor)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, catalog)

	authH := authhandler.NewHandler(authStore, catalog, cipher, auditor, cfg.JWTSecret)
	uiH := uihandler.NewHandler(modeStore, modeStore, planStore, catalog, auditor)
	notificationH := notificationhandler.NewHandler(notificationStore, catalog, i18n.SystemClock)
	platformH := platformhandler.NewHandler(collector, auditor, catalog)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.Recoverer(catalog))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	r.Use(middleware.Locale(cfg.DefaultLocale))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "NOT_READY", "database unreachable", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, middleware.GetRequestID(r.Context()))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/auth/login", authH.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW.Middleware)

			r.Post("/auth/logout", authH.Logout)

			r.Get("/ui/bootstrap", uiH.Bootstrap)
			r.Get("/ui/sidebar", uiH.Sidebar)
			r.Get("/ui/tabs/{page}", uiH.Tabs)
			r.Get("/ui/permissions", uiH.Permissions)
			r.Get("/ui/features", uiH.PlanFeatures)

			r.With(guard.RequireCompanyPermission(access.PermSettingsWrite)).
				Put("/company/work-mode", uiH.UpdateWorkMode)

			r.Get("/notifications", notificationH.List)
			r.Post("/notifications/{id}/read", notificationH.MarkRead)

			if cfg.MetricsEnabled {
				r.With(guard.RequirePlatformPermission(access.PermMetricsRead)).
					Get("/metrics", platformH.Snapshot)
			}
			r.With(guard.RequirePlatformPermission(access.PermAuditRead)).
				Get("/audit", platformH.AuditEvents)
		})
	})

	return r
}
