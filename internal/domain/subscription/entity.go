package subscription

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("subscription is already cancelled")
	ErrNotActive        = errors.New("subscription is not active")
)

// Subscription is a recurring product-delivery agreement. Cancelled is
// terminal: no operation transitions out of it.
type Subscription struct {
	id               uuid.UUID
	customerID       int64
	productID        uuid.UUID
	frequency        Frequency
	nextDeliveryDate time.Time
	status           Status
	createdAt        time.Time
	updatedAt        time.Time
}

func NewSubscription(customerID int64, productID uuid.UUID, frequency Frequency, firstDeliveryDate time.Time, now time.Time) (*Subscription, error) {
	if !frequency.IsValid() {
		return nil, ErrInvalidFrequency
	}
	return &Subscription{
		id:               uuid.New(),
		customerID:       customerID,
		productID:        productID,
		frequency:        frequency,
		nextDeliveryDate: firstDeliveryDate,
		status:           StatusActive,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructSubscription(
	id uuid.UUID,
	customerID int64,
	productID uuid.UUID,
	frequency Frequency,
	nextDeliveryDate time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:               id,
		customerID:       customerID,
		productID:        productID,
		frequency:        frequency,
		nextDeliveryDate: nextDeliveryDate,
		status:           status,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (s *Subscription) ID() uuid.UUID               { return s.id }
func (s *Subscription) CustomerID() int64           { return s.customerID }
func (s *Subscription) ProductID() uuid.UUID        { return s.productID }
func (s *Subscription) Frequency() Frequency        { return s.frequency }
func (s *Subscription) NextDeliveryDate() time.Time { return s.nextDeliveryDate }
func (s *Subscription) Status() Status              { return s.status }
func (s *Subscription) CreatedAt() time.Time        { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time        { return s.updatedAt }

func (s *Subscription) IsActive() bool {
	return s.status == StatusActive
}

// IsDue reports whether the subscription should be materialized into a
// delivery at the given instant.
func (s *Subscription) IsDue(now time.Time) bool {
	return s.status == StatusActive && !s.nextDeliveryDate.After(now)
}

// Cancel transitions to the terminal Cancelled state. Cancelling twice is an
// error, not a crash.
func (s *Subscription) Cancel(now time.Time) error {
	if s.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	s.status = StatusCancelled
	s.updatedAt = now
	return nil
}

// Renew advances the next delivery date by one frequency period.
func (s *Subscription) Renew(now time.Time) error {
	if s.status != StatusActive {
		return ErrNotActive
	}
	s.nextDeliveryDate = Advance(s.nextDeliveryDate, s.frequency)
	s.updatedAt = now
	return nil
}

// Advance computes the next delivery date from the current one. Calendar
// month arithmetic clamps the day to the target month's last day, so
// Jan 31 + 1 month is Feb 29 in a leap year and Feb 28 otherwise. An
// unrecognized frequency returns the date unchanged; ParseFrequency keeps
// such values out of the store.
func Advance(current time.Time, frequency Frequency) time.Time {
	switch frequency {
	case FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonthsClamped(current, 1)
	case FrequencyBimonthly:
		return addMonthsClamped(current, 2)
	default:
		return current
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	hour, minute, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
