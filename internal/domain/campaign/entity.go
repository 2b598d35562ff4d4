package campaign

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyCampaignName = errors.New("campaign name must not be empty")

// Registration links a customer to a marketing campaign. The pair
// (customer id, campaign name) is unique: registering twice is a dedup
// no-op, never a duplicate row.
type Registration struct {
	CustomerID   int64
	CampaignName string
	RegisteredAt time.Time
}

func NewRegistration(customerID int64, campaignName string, now time.Time) (Registration, error) {
	campaignName = strings.TrimSpace(campaignName)
	if campaignName == "" {
		return Registration{}, ErrEmptyCampaignName
	}
	return Registration{
		CustomerID:   customerID,
		CampaignName: campaignName,
		RegisteredAt: now,
	}, nil
}
