package readstore

import (
	"context"
	"errors"
	"time"

	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SubscriptionReadStore struct {
	db db.DBTX
}

func NewSubscriptionReadStore(dbtx db.DBTX) *SubscriptionReadStore {
	return &SubscriptionReadStore{db: dbtx}
}

const subscriptionViewColumns = `
id, customer_id, product_id, frequency, next_delivery_date, status, created_at, updated_at`

const findSubscriptionByIDSQL = `
SELECT` + subscriptionViewColumns + `
FROM subscriptions
WHERE id = $1`

func (r *SubscriptionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SubscriptionView, error) {
	v := &queries.SubscriptionView{}
	err := r.db.QueryRow(ctx, findSubscriptionByIDSQL, id).Scan(
		&v.ID, &v.CustomerID, &v.ProductID, &v.Frequency, &v.NextDeliveryDate, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription by id", err)
	}
	return v, nil
}

const findSubscriptionsByCustomerSQL = `
SELECT` + subscriptionViewColumns + `
FROM subscriptions
WHERE customer_id = $1
ORDER BY created_at DESC`

const findDueSubscriptionIDsSQL = `
SELECT id
FROM subscriptions
WHERE status = 'active' AND next_delivery_date <= $1
ORDER BY next_delivery_date ASC
LIMIT $2`

// FindDueIDs snapshots which subscriptions look due. The scheduler re-checks
// each one under a row lock before materializing, so this read can be stale
// without harm.
func (r *SubscriptionReadStore) FindDueIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, findDueSubscriptionIDsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find due subscriptions", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan due subscription id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read due subscription ids", err)
	}
	return ids, nil
}

func (r *SubscriptionReadStore) FindByCustomerID(ctx context.Context, customerID int64) ([]*queries.SubscriptionView, error) {
	rows, err := r.db.Query(ctx, findSubscriptionsByCustomerSQL, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list subscriptions by customer", err)
	}
	defer rows.Close()

	var views []*queries.SubscriptionView
	for rows.Next() {
		v := &queries.SubscriptionView{}
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.ProductID, &v.Frequency, &v.NextDeliveryDate, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan subscription", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read subscriptions", err)
	}
	return views, nil
}
