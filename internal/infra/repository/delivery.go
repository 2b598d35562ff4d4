package repository

import (
	"context"

	"petshop-loyalty/internal/domain/delivery"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DeliveryRepository struct{}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{}
}

const createDeliverySQL = `
INSERT INTO deliveries (id, customer_id, subscription_id, occurrence_date, address, delivery_date, items, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *DeliveryRepository) Create(ctx context.Context, dbtx db.DBTX, d *delivery.Delivery) error {
	subID, occDate := occurrenceColumns(d)
	_, err := dbtx.Exec(ctx, createDeliverySQL,
		d.ID(), d.CustomerID(), subID, occDate, d.Address(), d.DeliveryDate(), d.Items(), d.Status().String(), d.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create delivery", err)
	}
	return nil
}

const createDeliveryFromOccurrenceSQL = `
INSERT INTO deliveries (id, customer_id, subscription_id, occurrence_date, address, delivery_date, items, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (subscription_id, occurrence_date) DO NOTHING`

// CreateFromOccurrence relies on the unique (subscription_id, occurrence_date)
// key: a re-run that already materialized this occurrence inserts nothing and
// reports false.
func (r *DeliveryRepository) CreateFromOccurrence(ctx context.Context, dbtx db.DBTX, d *delivery.Delivery) (bool, error) {
	occ := d.Occurrence()
	if occ == nil {
		return false, infra.WrapRepoErr("delivery has no subscription occurrence", nil)
	}
	tag, err := dbtx.Exec(ctx, createDeliveryFromOccurrenceSQL,
		d.ID(), d.CustomerID(), occ.SubscriptionID, occ.Date, d.Address(), d.DeliveryDate(), d.Items(), d.Status().String(), d.CreatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to create delivery for occurrence", err)
	}
	return tag.RowsAffected() > 0, nil
}

const updateDeliveryStatusSQL = `
UPDATE deliveries SET status = $2 WHERE id = $1`

func (r *DeliveryRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status delivery.Status) error {
	tag, err := dbtx.Exec(ctx, updateDeliveryStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update delivery status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("delivery not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const recordLocationSQL = `
INSERT INTO delivery_locations (delivery_id, latitude, longitude, recorded_at)
VALUES ($1, $2, $3, $4)`

func (r *DeliveryRepository) RecordLocation(ctx context.Context, dbtx db.DBTX, loc delivery.Location) error {
	_, err := dbtx.Exec(ctx, recordLocationSQL, loc.DeliveryID, loc.Latitude, loc.Longitude, loc.RecordedAt)
	if err != nil {
		if isPgErrCode(err, pgErrCodeForeignKeyViolation) {
			return infra.WrapRepoErr("delivery not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to record delivery location", err)
	}
	return nil
}

func occurrenceColumns(d *delivery.Delivery) (*uuid.UUID, any) {
	occ := d.Occurrence()
	if occ == nil {
		return nil, nil
	}
	return &occ.SubscriptionID, occ.Date
}
