package loyalty

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PromotionWindow is a promotional date range during which credited points
// earn a bonus multiplier. Windows are configured by an administrative
// collaborator and are read-only to the ledger.
type PromotionWindow struct {
	id         uuid.UUID
	name       string
	startDate  time.Time
	endDate    time.Time
	multiplier float64
}

func NewPromotionWindow(name string, startDate, endDate time.Time, multiplier float64) (*PromotionWindow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyWindowName
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidWindowBounds
	}
	if multiplier < 1 {
		return nil, ErrInvalidMultiplier
	}
	return &PromotionWindow{
		id:         uuid.New(),
		name:       name,
		startDate:  startDate,
		endDate:    endDate,
		multiplier: multiplier,
	}, nil
}

func ReconstructPromotionWindow(id uuid.UUID, name string, startDate, endDate time.Time, multiplier float64) *PromotionWindow {
	return &PromotionWindow{
		id:         id,
		name:       name,
		startDate:  startDate,
		endDate:    endDate,
		multiplier: multiplier,
	}
}

func (w *PromotionWindow) ID() uuid.UUID        { return w.id }
func (w *PromotionWindow) Name() string         { return w.name }
func (w *PromotionWindow) StartDate() time.Time { return w.startDate }
func (w *PromotionWindow) EndDate() time.Time   { return w.endDate }
func (w *PromotionWindow) Multiplier() float64  { return w.multiplier }

// Contains reports whether at falls inside the window. Both bounds are
// inclusive.
func (w *PromotionWindow) Contains(at time.Time) bool {
	return !at.Before(w.startDate) && !at.After(w.endDate)
}

// ActiveMultiplier resolves the bonus multiplier in effect at the given
// instant. When several windows overlap the highest multiplier wins; when
// none are active the multiplier is 1. Pure given the window snapshot.
func ActiveMultiplier(windows []*PromotionWindow, at time.Time) float64 {
	multiplier := 1.0
	for _, w := range windows {
		if w.Contains(at) && w.multiplier > multiplier {
			multiplier = w.multiplier
		}
	}
	return multiplier
}
