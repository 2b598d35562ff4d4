package queries

import (
	"context"
	"time"

	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/errs"
)

var ErrInvalidSegmentCriteria = errs.New("invalid segment criteria")

// SegmentCriteria describe a marketing segment: customers who spent at least
// MinTotalSpentCents across at least MinPurchaseCount orders within the
// trailing PeriodInMonths window.
type SegmentCriteria struct {
	MinTotalSpentCents int64
	MinPurchaseCount   int
	PeriodInMonths     int
}

type SegmentQueries interface {
	Segment(ctx context.Context, criteria SegmentCriteria) ([]int64, error)
	LifetimeValues(ctx context.Context) ([]*LifetimeValueView, error)
	HighValueCustomers(ctx context.Context, minLTVCents int64, minPoints int) ([]*HighValueCustomerView, error)
}

type OrderReadStore interface {
	// AggregateCustomers groups orders placed after cutoff by customer and
	// returns the ids matching the spend/count thresholds.
	AggregateCustomers(ctx context.Context, cutoff time.Time, minTotalSpentCents int64, minPurchaseCount int) ([]int64, error)
	SumLifetimeValues(ctx context.Context) ([]*LifetimeValueView, error)
	FindHighValueCustomers(ctx context.Context, minLTVCents int64, minPoints int) ([]*HighValueCustomerView, error)
}

type segmentQueriesImpl struct {
	store OrderReadStore
	clock clock.Clock
}

func NewSegmentQueries(store OrderReadStore, clk clock.Clock) SegmentQueries {
	return &segmentQueriesImpl{store: store, clock: clk}
}

func (q *segmentQueriesImpl) Segment(ctx context.Context, criteria SegmentCriteria) ([]int64, error) {
	if criteria.MinTotalSpentCents < 0 || criteria.MinPurchaseCount < 0 || criteria.PeriodInMonths <= 0 {
		return nil, ErrInvalidSegmentCriteria
	}
	cutoff := q.clock.Now().AddDate(0, -criteria.PeriodInMonths, 0)
	return q.store.AggregateCustomers(ctx, cutoff, criteria.MinTotalSpentCents, criteria.MinPurchaseCount)
}

func (q *segmentQueriesImpl) LifetimeValues(ctx context.Context) ([]*LifetimeValueView, error) {
	return q.store.SumLifetimeValues(ctx)
}

func (q *segmentQueriesImpl) HighValueCustomers(ctx context.Context, minLTVCents int64, minPoints int) ([]*HighValueCustomerView, error) {
	if minLTVCents < 0 || minPoints < 0 {
		return nil, ErrInvalidSegmentCriteria
	}
	return q.store.FindHighValueCustomers(ctx, minLTVCents, minPoints)
}
