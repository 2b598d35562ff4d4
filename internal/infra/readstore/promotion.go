package readstore

import (
	"context"
	"time"

	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/google/uuid"
)

type PromotionReadStore struct {
	db db.DBTX
}

func NewPromotionReadStore(dbtx db.DBTX) *PromotionReadStore {
	return &PromotionReadStore{db: dbtx}
}

const findActiveWindowsSQL = `
SELECT id, name, start_date, end_date, multiplier
FROM promotion_windows
WHERE start_date <= $1 AND end_date >= $1`

// FindActiveAt returns the windows whose inclusive interval contains the
// instant; the multiplier tie-break happens in the domain.
func (r *PromotionReadStore) FindActiveAt(ctx context.Context, at time.Time) ([]*loyalty.PromotionWindow, error) {
	rows, err := r.db.Query(ctx, findActiveWindowsSQL, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active promotion windows", err)
	}
	defer rows.Close()

	var windows []*loyalty.PromotionWindow
	for rows.Next() {
		var (
			id         uuid.UUID
			name       string
			startDate  time.Time
			endDate    time.Time
			multiplier float64
		)
		if err := rows.Scan(&id, &name, &startDate, &endDate, &multiplier); err != nil {
			return nil, infra.WrapRepoErr("failed to scan promotion window", err)
		}
		windows = append(windows, loyalty.ReconstructPromotionWindow(id, name, startDate, endDate, multiplier))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read promotion windows", err)
	}
	return windows, nil
}

const findAllWindowsSQL = `
SELECT id, name, start_date, end_date, multiplier
FROM promotion_windows
ORDER BY start_date DESC`

func (r *PromotionReadStore) FindAllWindows(ctx context.Context) ([]*queries.PromotionWindowView, error) {
	rows, err := r.db.Query(ctx, findAllWindowsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list promotion windows", err)
	}
	defer rows.Close()

	var views []*queries.PromotionWindowView
	for rows.Next() {
		v := &queries.PromotionWindowView{}
		if err := rows.Scan(&v.ID, &v.Name, &v.StartDate, &v.EndDate, &v.Multiplier); err != nil {
			return nil, infra.WrapRepoErr("failed to scan promotion window", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read promotion windows", err)
	}
	return views, nil
}
