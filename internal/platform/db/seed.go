package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/plan"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/workmode"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	companyID, err := ensureCompany(ctx, pool, cfg.SeedCompanyName, workmode.FlexibleShift)
	if err != nil {
		return err
	}

	planID, err := ensurePlan(ctx, pool, "standard")
	if err != nil {
		return err
	}

	if err := ensurePlanFeatures(ctx, pool, planID); err != nil {
		return err
	}

	if err := ensureSubscription(ctx, pool, companyID, planID); err != nil {
		return err
	}

	if cfg.SeedAdminEmail != "" {
		if err := ensureUser(ctx, pool, companyID, access.RoleCompanyAdmin, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}

	if cfg.SeedPlatformEmail != "" {
		if err := ensureUser(ctx, pool, "", access.RoleAdmin, cfg.SeedPlatformEmail, cfg.SeedPlatformPassword); err != nil {
			return err
		}
	}

	return nil
}

func ensureCompany(ctx context.Context, pool *pgxpool.Pool, name string, mode workmode.Mode) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM companies WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, `
    INSERT INTO companies (name, work_mode)
    VALUES ($1, $2)
    RETURNING id
  `, name, string(mode)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensurePlan(ctx context.Context, pool *pgxpool.Pool, code string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM plans WHERE code = $1", code).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO plans (code) VALUES ($1) RETURNING id", code).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensurePlanFeatures(ctx context.Context, pool *pgxpool.Pool, planID string) error {
	features := []plan.Feature{
		{Code: plan.FeatureTimesheet, Enabled: true},
		{Code: plan.FeatureShiftScheduling, Enabled: true},
		{Code: plan.FeatureLeave, Enabled: true},
		{Code: plan.FeaturePayroll, Enabled: true},
		{Code: plan.FeatureDataExport, Enabled: false},
		{Code: plan.FeatureEContract, Enabled: false},
	}
	for _, feature := range features {
		_, err := pool.Exec(ctx, `
      INSERT INTO plan_features (plan_id, code, enabled)
      VALUES ($1, $2, $3)
      ON CONFLICT (plan_id, code) DO NOTHING
    `, planID, feature.Code, feature.Enabled)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureSubscription(ctx context.Context, pool *pgxpool.Pool, companyID, planID string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM subscriptions WHERE company_id = $1 AND status = 'active'", companyID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := pool.Exec(ctx, `
    INSERT INTO subscriptions (company_id, plan_id, status)
    VALUES ($1, $2, 'active')
  `, companyID, planID)
	return err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, companyID, role, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return errors.New("seed user requires email and password")
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	var companyArg any
	if companyID != "" {
		companyArg = companyID
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (company_id, role, email, password_hash, status)
    VALUES ($1, $2, $3, $4, 'active')
  `, companyArg, role, email, hash)
	return err
}
