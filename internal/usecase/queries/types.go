package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type LoyaltyAccountView struct {
	CustomerID int64     `json:"customer_id"`
	Points     int       `json:"points"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SubscriptionView struct {
	ID               uuid.UUID `json:"id"`
	CustomerID       int64     `json:"customer_id"`
	ProductID        uuid.UUID `json:"product_id"`
	Frequency        string    `json:"frequency"`
	NextDeliveryDate time.Time `json:"next_delivery_date"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PromotionWindowView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Multiplier float64   `json:"multiplier"`
}

type CampaignRegistrationView struct {
	CustomerID   int64     `json:"customer_id"`
	CampaignName string    `json:"campaign_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

type DeliveryLocationView struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

type LifetimeValueView struct {
	CustomerID         int64 `json:"customer_id"`
	LifetimeValueCents int64 `json:"lifetime_value_cents"`
}

type HighValueCustomerView struct {
	CustomerID int64 `json:"customer_id"`
	Points     int   `json:"points"`
}
