package request

import "time"

type RegisterCampaignRequest struct {
	CustomerIDs []int64 `json:"customer_ids" binding:"required"`
}

type SegmentRequest struct {
	MinTotalSpentCents int64 `json:"min_total_spent_cents"`
	MinPurchaseCount   int   `json:"min_purchase_count"`
	PeriodInMonths     int   `json:"period_in_months" binding:"required"`
}

type CreatePromotionRequest struct {
	Name       string    `json:"name" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
	Multiplier float64   `json:"multiplier" binding:"required"`
}
