package plan

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

// FeaturesForCompany returns the feature list of the company's active
// subscription. A company without an active subscription gets an empty
// list, never rows from an expired or cancelled plan.
func (s *Store) FeaturesForCompany(ctx context.Context, companyID string) ([]Feature, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pf.code, pf.enabled
    FROM subscriptions s
    JOIN plan_features pf ON pf.plan_id = s.plan_id
    WHERE s.company_id = $1 AND s.status = 'active'
  `, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Feature, 0, 8)
	for rows.Next() {
		var feature Feature
		if err := rows.Scan(&feature.Code, &feature.Enabled); err != nil {
			return nil, err
		}
		out = append(out, feature)
	}
	return out, rows.Err()
}
