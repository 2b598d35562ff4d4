package queries

import (
	"context"
)

type PromotionQueries interface {
	ListWindows(ctx context.Context) ([]*PromotionWindowView, error)
}

type PromotionReadStore interface {
	FindAllWindows(ctx context.Context) ([]*PromotionWindowView, error)
}

type promotionQueriesImpl struct {
	store PromotionReadStore
}

func NewPromotionQueries(store PromotionReadStore) PromotionQueries {
	return &promotionQueriesImpl{store: store}
}

func (q *promotionQueriesImpl) ListWindows(ctx context.Context) ([]*PromotionWindowView, error) {
	return q.store.FindAllWindows(ctx)
}
