package readstore

import (
	"context"

	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/google/uuid"
)

type DeliveryReadStore struct {
	db db.DBTX
}

func NewDeliveryReadStore(dbtx db.DBTX) *DeliveryReadStore {
	return &DeliveryReadStore{db: dbtx}
}

const findLocationHistorySQL = `
SELECT delivery_id, latitude, longitude, recorded_at
FROM delivery_locations
WHERE delivery_id = $1
ORDER BY recorded_at ASC`

func (r *DeliveryReadStore) FindLocationHistory(ctx context.Context, deliveryID uuid.UUID) ([]*queries.DeliveryLocationView, error) {
	rows, err := r.db.Query(ctx, findLocationHistorySQL, deliveryID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find delivery location history", err)
	}
	defer rows.Close()

	var views []*queries.DeliveryLocationView
	for rows.Next() {
		v := &queries.DeliveryLocationView{}
		if err := rows.Scan(&v.DeliveryID, &v.Latitude, &v.Longitude, &v.RecordedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan delivery location", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read delivery locations", err)
	}
	return views, nil
}
