package repository

import (
	"context"

	"petshop-loyalty/internal/domain/campaign"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
)

type CampaignRepository struct{}

func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{}
}

const registerBatchSQL = `
INSERT INTO campaign_registrations (customer_id, campaign_name, registered_at)
SELECT unnest($1::bigint[]), $2, $3
ON CONFLICT (customer_id, campaign_name) DO NOTHING
RETURNING customer_id`

// RegisterBatch deduplicates inside the insert itself: customers already
// registered for the campaign conflict on the primary key and are skipped,
// and only the newly inserted ids come back.
func (r *CampaignRepository) RegisterBatch(ctx context.Context, dbtx db.DBTX, regs []campaign.Registration) ([]int64, error) {
	if len(regs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(regs))
	for i, reg := range regs {
		ids[i] = reg.CustomerID
	}
	campaignName := regs[0].CampaignName
	registeredAt := regs[0].RegisteredAt

	rows, err := dbtx.Query(ctx, registerBatchSQL, ids, campaignName, registeredAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to register campaign batch", err)
	}
	defer rows.Close()

	var registered []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan registered customer id", err)
		}
		registered = append(registered, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read registered customer ids", err)
	}
	return registered, nil
}
