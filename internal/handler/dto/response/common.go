package response

import "github.com/google/uuid"

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type RegisterCampaignResponse struct {
	CampaignName  string  `json:"campaign_name"`
	RegisteredIDs []int64 `json:"registered_ids"`
	SkippedCount  int     `json:"skipped_count"`
}

type SegmentResponse struct {
	CustomerIDs []int64 `json:"customer_ids"`
}
