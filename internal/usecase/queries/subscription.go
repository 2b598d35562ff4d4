package queries

import (
	"context"

	"github.com/google/uuid"
)

type SubscriptionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SubscriptionView, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*SubscriptionView, error)
}

type SubscriptionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionView, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]*SubscriptionView, error)
}

type subscriptionQueriesImpl struct {
	store SubscriptionReadStore
}

func NewSubscriptionQueries(store SubscriptionReadStore) SubscriptionQueries {
	return &subscriptionQueriesImpl{store: store}
}

func (q *subscriptionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SubscriptionView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *subscriptionQueriesImpl) ListByCustomer(ctx context.Context, customerID int64) ([]*SubscriptionView, error) {
	return q.store.FindByCustomerID(ctx, customerID)
}
