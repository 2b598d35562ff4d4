package queries

import (
	"context"

	"github.com/google/uuid"
)

type DeliveryQueries interface {
	LocationHistory(ctx context.Context, deliveryID uuid.UUID) ([]*DeliveryLocationView, error)
}

type DeliveryReadStore interface {
	FindLocationHistory(ctx context.Context, deliveryID uuid.UUID) ([]*DeliveryLocationView, error)
}

type deliveryQueriesImpl struct {
	store DeliveryReadStore
}

func NewDeliveryQueries(store DeliveryReadStore) DeliveryQueries {
	return &deliveryQueriesImpl{store: store}
}

func (q *deliveryQueriesImpl) LocationHistory(ctx context.Context, deliveryID uuid.UUID) ([]*DeliveryLocationView, error) {
	return q.store.FindLocationHistory(ctx, deliveryID)
}
