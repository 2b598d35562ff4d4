package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateSubscriptionRequest struct {
	CustomerID        int64     `json:"customer_id" binding:"required"`
	ProductID         uuid.UUID `json:"product_id" binding:"required"`
	Frequency         string    `json:"frequency" binding:"required"`
	FirstDeliveryDate time.Time `json:"first_delivery_date" binding:"required"`
}

// RenewSubscriptionRequest is the optional body of a renewal. A positive
// RedeemPoints turns the renewal into a discounted one: the points are
// debited in the same transaction. CreditPoints are granted after a plain
// renewal without the promotion multiplier; the two are mutually exclusive.
type RenewSubscriptionRequest struct {
	RedeemPoints int `json:"redeem_points"`
	CreditPoints int `json:"credit_points"`
}
