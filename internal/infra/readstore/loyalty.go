package readstore

import (
	"context"
	"errors"

	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type LoyaltyReadStore struct {
	db db.DBTX
}

func NewLoyaltyReadStore(dbtx db.DBTX) *LoyaltyReadStore {
	return &LoyaltyReadStore{db: dbtx}
}

const findBalanceSQL = `
SELECT points FROM loyalty_accounts WHERE customer_id = $1`

func (r *LoyaltyReadStore) FindBalance(ctx context.Context, customerID int64) (int, bool, error) {
	var points int
	err := r.db.QueryRow(ctx, findBalanceSQL, customerID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, infra.WrapRepoErr("failed to find loyalty balance", err)
	}
	return points, true, nil
}

const findAllAccountsSQL = `
SELECT customer_id, points, updated_at FROM loyalty_accounts ORDER BY customer_id`

func (r *LoyaltyReadStore) FindAllAccounts(ctx context.Context) ([]*queries.LoyaltyAccountView, error) {
	rows, err := r.db.Query(ctx, findAllAccountsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loyalty accounts", err)
	}
	defer rows.Close()

	var views []*queries.LoyaltyAccountView
	for rows.Next() {
		v := &queries.LoyaltyAccountView{}
		if err := rows.Scan(&v.CustomerID, &v.Points, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loyalty account", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read loyalty accounts", err)
	}
	return views, nil
}
