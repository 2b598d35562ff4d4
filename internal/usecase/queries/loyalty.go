package queries

import (
	"context"
)

type LoyaltyQueries interface {
	// BalanceOf never errors for an unknown customer: the balance is 0.
	BalanceOf(ctx context.Context, customerID int64) (int, error)
	ListAccounts(ctx context.Context) ([]*LoyaltyAccountView, error)
}

type LoyaltyReadStore interface {
	FindBalance(ctx context.Context, customerID int64) (int, bool, error)
	FindAllAccounts(ctx context.Context) ([]*LoyaltyAccountView, error)
}

type loyaltyQueriesImpl struct {
	store LoyaltyReadStore
}

func NewLoyaltyQueries(store LoyaltyReadStore) LoyaltyQueries {
	return &loyaltyQueriesImpl{store: store}
}

func (q *loyaltyQueriesImpl) BalanceOf(ctx context.Context, customerID int64) (int, error) {
	balance, found, err := q.store.FindBalance(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return balance, nil
}

func (q *loyaltyQueriesImpl) ListAccounts(ctx context.Context) ([]*LoyaltyAccountView, error) {
	return q.store.FindAllAccounts(ctx)
}
