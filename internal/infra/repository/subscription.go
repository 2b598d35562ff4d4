package repository

import (
	"context"
	"errors"
	"time"

	"petshop-loyalty/internal/domain/subscription"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SubscriptionRepository struct{}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{}
}

const createSubscriptionSQL = `
INSERT INTO subscriptions (id, customer_id, product_id, frequency, next_delivery_date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *SubscriptionRepository) Create(ctx context.Context, dbtx db.DBTX, sub *subscription.Subscription) error {
	_, err := dbtx.Exec(ctx, createSubscriptionSQL,
		sub.ID(), sub.CustomerID(), sub.ProductID(), sub.Frequency().String(),
		sub.NextDeliveryDate(), sub.Status().String(), sub.CreatedAt(), sub.UpdatedAt(),
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeForeignKeyViolation) {
			return infra.WrapRepoErr("subscription references missing customer or product", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create subscription", err)
	}
	return nil
}

const findSubscriptionForUpdateSQL = `
SELECT id, customer_id, product_id, frequency, next_delivery_date, status, created_at, updated_at
FROM subscriptions
WHERE id = $1
FOR UPDATE`

// FindByIDForUpdate holds a row lock until the surrounding transaction ends,
// so two scheduler runs (or a run and a manual renewal) cannot both advance
// the same subscription.
func (r *SubscriptionRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*subscription.Subscription, error) {
	row := dbtx.QueryRow(ctx, findSubscriptionForUpdateSQL, id)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription for update", err)
	}
	return sub, nil
}

const updateSubscriptionSQL = `
UPDATE subscriptions
SET frequency = $2, next_delivery_date = $3, status = $4, updated_at = $5
WHERE id = $1`

func (r *SubscriptionRepository) Update(ctx context.Context, dbtx db.DBTX, sub *subscription.Subscription) error {
	tag, err := dbtx.Exec(ctx, updateSubscriptionSQL,
		sub.ID(), sub.Frequency().String(), sub.NextDeliveryDate(), sub.Status().String(), sub.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update subscription", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var (
		id               uuid.UUID
		customerID       int64
		productID        uuid.UUID
		frequency        string
		nextDeliveryDate time.Time
		status           string
		createdAt        time.Time
		updatedAt        time.Time
	)
	if err := row.Scan(&id, &customerID, &productID, &frequency, &nextDeliveryDate, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return subscription.ReconstructSubscription(
		id, customerID, productID,
		subscription.Frequency(frequency),
		nextDeliveryDate,
		subscription.Status(status),
		createdAt, updatedAt,
	), nil
}
