package queries

import (
	"context"
)

type CampaignQueries interface {
	ListAll(ctx context.Context) ([]*CampaignRegistrationView, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*CampaignRegistrationView, error)
}

type CampaignReadStore interface {
	FindAll(ctx context.Context) ([]*CampaignRegistrationView, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]*CampaignRegistrationView, error)
}

type campaignQueriesImpl struct {
	store CampaignReadStore
}

func NewCampaignQueries(store CampaignReadStore) CampaignQueries {
	return &campaignQueriesImpl{store: store}
}

func (q *campaignQueriesImpl) ListAll(ctx context.Context) ([]*CampaignRegistrationView, error) {
	return q.store.FindAll(ctx)
}

func (q *campaignQueriesImpl) ListByCustomer(ctx context.Context, customerID int64) ([]*CampaignRegistrationView, error) {
	return q.store.FindByCustomerID(ctx, customerID)
}
