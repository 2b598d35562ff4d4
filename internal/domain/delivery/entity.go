package delivery

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyAddress  = errors.New("delivery address must not be empty")
	ErrNoItems       = errors.New("delivery must contain at least one item")
	ErrInvalidStatus = errors.New("invalid delivery status")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusShipped, StatusDelivered:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// Occurrence identifies one due instance of a subscription. Deliveries
// materialized by the scheduler carry it as their idempotency key: at most
// one delivery exists per (subscription, occurrence date) pair.
type Occurrence struct {
	SubscriptionID uuid.UUID
	Date           time.Time
}

// Delivery is a scheduled shipment. Scheduler-created deliveries reference
// their subscription occurrence; manually scheduled ones do not.
type Delivery struct {
	id           uuid.UUID
	customerID   int64
	address      string
	deliveryDate time.Time
	items        []string
	status       Status
	occurrence   *Occurrence
	createdAt    time.Time
}

func NewDelivery(customerID int64, address string, deliveryDate time.Time, items []string, now time.Time) (*Delivery, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return &Delivery{
		id:           uuid.New(),
		customerID:   customerID,
		address:      address,
		deliveryDate: deliveryDate,
		items:        items,
		status:       StatusPending,
		createdAt:    now,
	}, nil
}

// NewFromOccurrence builds the delivery for one due subscription occurrence.
// The delivery date is the occurrence date itself, not the processing time.
func NewFromOccurrence(occ Occurrence, customerID int64, address string, items []string, now time.Time) (*Delivery, error) {
	d, err := NewDelivery(customerID, address, occ.Date, items, now)
	if err != nil {
		return nil, err
	}
	o := occ
	d.occurrence = &o
	return d, nil
}

func ReconstructDelivery(
	id uuid.UUID,
	customerID int64,
	address string,
	deliveryDate time.Time,
	items []string,
	status Status,
	occurrence *Occurrence,
	createdAt time.Time,
) *Delivery {
	return &Delivery{
		id:           id,
		customerID:   customerID,
		address:      address,
		deliveryDate: deliveryDate,
		items:        items,
		status:       status,
		occurrence:   occurrence,
		createdAt:    createdAt,
	}
}

func (d *Delivery) ID() uuid.UUID           { return d.id }
func (d *Delivery) CustomerID() int64       { return d.customerID }
func (d *Delivery) Address() string         { return d.address }
func (d *Delivery) DeliveryDate() time.Time { return d.deliveryDate }
func (d *Delivery) Items() []string         { return d.items }
func (d *Delivery) Status() Status          { return d.status }
func (d *Delivery) Occurrence() *Occurrence { return d.occurrence }
func (d *Delivery) CreatedAt() time.Time    { return d.createdAt }

func (d *Delivery) UpdateStatus(status Status) {
	d.status = status
}

// Location is one point in a delivery's tracking history.
type Location struct {
	DeliveryID uuid.UUID
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}
