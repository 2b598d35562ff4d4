package readstore

import (
	"context"
	"time"

	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/queries"
)

// OrderReadStore aggregates the external order history. Orders are written by
// the order-management collaborator; this store only reads them.
type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const aggregateCustomersSQL = `
SELECT customer_id
FROM orders
WHERE purchase_date >= $1
GROUP BY customer_id
HAVING SUM(total_price_cents) >= $2 AND COUNT(id) >= $3
ORDER BY customer_id`

func (r *OrderReadStore) AggregateCustomers(ctx context.Context, cutoff time.Time, minTotalSpentCents int64, minPurchaseCount int) ([]int64, error) {
	rows, err := r.db.Query(ctx, aggregateCustomersSQL, cutoff, minTotalSpentCents, minPurchaseCount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate customer orders", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan segmented customer id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read segmented customers", err)
	}
	return ids, nil
}

const sumLifetimeValuesSQL = `
SELECT customer_id, SUM(total_price_cents)
FROM orders
GROUP BY customer_id
ORDER BY customer_id`

func (r *OrderReadStore) SumLifetimeValues(ctx context.Context) ([]*queries.LifetimeValueView, error) {
	rows, err := r.db.Query(ctx, sumLifetimeValuesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum lifetime values", err)
	}
	defer rows.Close()

	var views []*queries.LifetimeValueView
	for rows.Next() {
		v := &queries.LifetimeValueView{}
		if err := rows.Scan(&v.CustomerID, &v.LifetimeValueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan lifetime value", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read lifetime values", err)
	}
	return views, nil
}

const findHighValueCustomersSQL = `
SELECT la.customer_id, la.points
FROM loyalty_accounts la
JOIN (
    SELECT customer_id
    FROM orders
    GROUP BY customer_id
    HAVING SUM(total_price_cents) >= $1
) hv ON hv.customer_id = la.customer_id
WHERE la.points >= $2
ORDER BY la.customer_id`

func (r *OrderReadStore) FindHighValueCustomers(ctx context.Context, minLTVCents int64, minPoints int) ([]*queries.HighValueCustomerView, error) {
	rows, err := r.db.Query(ctx, findHighValueCustomersSQL, minLTVCents, minPoints)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find high value customers", err)
	}
	defer rows.Close()

	var views []*queries.HighValueCustomerView
	for rows.Next() {
		v := &queries.HighValueCustomerView{}
		if err := rows.Scan(&v.CustomerID, &v.Points); err != nil {
			return nil, infra.WrapRepoErr("failed to scan high value customer", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read high value customers", err)
	}
	return views, nil
}
