package loyalty

import (
	"errors"
)

var (
	ErrNegativePoints      = errors.New("points cannot be negative")
	ErrRedeemOutOfBounds   = errors.New("redeem amount out of bounds")
	ErrInvalidMultiplier   = errors.New("multiplier must be at least 1")
	ErrInvalidWindowBounds = errors.New("window end must not precede start")
	ErrEmptyWindowName     = errors.New("window name must not be empty")
)

// Redeem policy bounds. Debits outside [MinRedeem, MaxRedeem] are rejected
// before the balance is ever consulted.
const (
	MinRedeem = 50
	MaxRedeem = 1000
)

// ValidateCredit checks a raw credit amount before any multiplier is applied.
func ValidateCredit(rawPoints int) error {
	if rawPoints < 0 {
		return ErrNegativePoints
	}
	return nil
}

// ValidateRedeem enforces the policy bounds on a debit request.
func ValidateRedeem(points, minRedeem, maxRedeem int) error {
	if points < minRedeem || points > maxRedeem {
		return ErrRedeemOutOfBounds
	}
	return nil
}

// FinalPoints applies a bonus multiplier to a raw credit, truncating toward
// the integer point granularity.
func FinalPoints(rawPoints int, multiplier float64) int {
	return int(float64(rawPoints) * multiplier)
}
