package readstore

import (
	"context"

	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type CampaignReadStore struct {
	db db.DBTX
}

func NewCampaignReadStore(dbtx db.DBTX) *CampaignReadStore {
	return &CampaignReadStore{db: dbtx}
}

const findAllRegistrationsSQL = `
SELECT customer_id, campaign_name, registered_at
FROM campaign_registrations
ORDER BY registered_at DESC`

func (r *CampaignReadStore) FindAll(ctx context.Context) ([]*queries.CampaignRegistrationView, error) {
	rows, err := r.db.Query(ctx, findAllRegistrationsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaign registrations", err)
	}
	return scanRegistrations(rows)
}

const findRegistrationsByCustomerSQL = `
SELECT customer_id, campaign_name, registered_at
FROM campaign_registrations
WHERE customer_id = $1
ORDER BY registered_at DESC`

func (r *CampaignReadStore) FindByCustomerID(ctx context.Context, customerID int64) ([]*queries.CampaignRegistrationView, error) {
	rows, err := r.db.Query(ctx, findRegistrationsByCustomerSQL, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaign registrations by customer", err)
	}
	return scanRegistrations(rows)
}

func scanRegistrations(rows pgx.Rows) ([]*queries.CampaignRegistrationView, error) {
	defer rows.Close()

	var views []*queries.CampaignRegistrationView
	for rows.Next() {
		v := &queries.CampaignRegistrationView{}
		if err := rows.Scan(&v.CustomerID, &v.CampaignName, &v.RegisteredAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan campaign registration", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read campaign registrations", err)
	}
	return views, nil
}
