//go:build unit

package loyalty_test

import (
	"testing"
	"time"

	"petshop-loyalty/internal/domain/loyalty"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, name string, start, end time.Time, multiplier float64) *loyalty.PromotionWindow {
	t.Helper()
	w, err := loyalty.NewPromotionWindow(name, start, end, multiplier)
	require.NoError(t, err)
	return w
}

func TestActiveMultiplier(t *testing.T) {
	start := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	holiday := mustWindow(t, "Holiday Special", start, end, 2.0)

	t.Run("no windows yields base multiplier", func(t *testing.T) {
		assert.Equal(t, 1.0, loyalty.ActiveMultiplier(nil, start))
	})

	t.Run("instant inside window", func(t *testing.T) {
		at := time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, 2.0, loyalty.ActiveMultiplier([]*loyalty.PromotionWindow{holiday}, at))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		windows := []*loyalty.PromotionWindow{holiday}
		assert.Equal(t, 2.0, loyalty.ActiveMultiplier(windows, start))
		assert.Equal(t, 2.0, loyalty.ActiveMultiplier(windows, end))
	})

	t.Run("instant outside window", func(t *testing.T) {
		before := start.Add(-time.Second)
		after := end.Add(time.Second)
		windows := []*loyalty.PromotionWindow{holiday}
		assert.Equal(t, 1.0, loyalty.ActiveMultiplier(windows, before))
		assert.Equal(t, 1.0, loyalty.ActiveMultiplier(windows, after))
	})

	t.Run("overlapping windows pick the highest multiplier", func(t *testing.T) {
		flash := mustWindow(t, "Flash Sale", start, end, 3.0)
		small := mustWindow(t, "Small Bump", start, end, 1.5)
		at := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 3.0, loyalty.ActiveMultiplier([]*loyalty.PromotionWindow{holiday, flash, small}, at))
	})
}

func TestFinalPoints(t *testing.T) {
	tests := []struct {
		name       string
		raw        int
		multiplier float64
		want       int
	}{
		{name: "base multiplier", raw: 100, multiplier: 1.0, want: 100},
		{name: "holiday doubling", raw: 100, multiplier: 2.0, want: 200},
		{name: "fractional result truncates", raw: 33, multiplier: 1.5, want: 49},
		{name: "zero points", raw: 0, multiplier: 2.0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loyalty.FinalPoints(tt.raw, tt.multiplier))
		})
	}
}

func TestValidateCredit(t *testing.T) {
	assert.NoError(t, loyalty.ValidateCredit(0))
	assert.NoError(t, loyalty.ValidateCredit(100))
	assert.ErrorIs(t, loyalty.ValidateCredit(-1), loyalty.ErrNegativePoints)
}

func TestValidateRedeem(t *testing.T) {
	tests := []struct {
		name   string
		points int
		errIs  error
	}{
		{name: "below minimum", points: loyalty.MinRedeem - 1, errIs: loyalty.ErrRedeemOutOfBounds},
		{name: "at minimum", points: loyalty.MinRedeem},
		{name: "at maximum", points: loyalty.MaxRedeem},
		{name: "above maximum", points: loyalty.MaxRedeem + 1, errIs: loyalty.ErrRedeemOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loyalty.ValidateRedeem(tt.points, loyalty.MinRedeem, loyalty.MaxRedeem)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewPromotionWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("valid window", func(t *testing.T) {
		w, err := loyalty.NewPromotionWindow("New Year", start, end, 1.5)
		require.NoError(t, err)
		assert.Equal(t, "New Year", w.Name())
		assert.Equal(t, 1.5, w.Multiplier())
	})

	t.Run("name is trimmed", func(t *testing.T) {
		w, err := loyalty.NewPromotionWindow("  New Year  ", start, end, 1.5)
		require.NoError(t, err)
		assert.Equal(t, "New Year", w.Name())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := loyalty.NewPromotionWindow("   ", start, end, 1.5)
		assert.ErrorIs(t, err, loyalty.ErrEmptyWindowName)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := loyalty.NewPromotionWindow("Backwards", end, start, 1.5)
		assert.ErrorIs(t, err, loyalty.ErrInvalidWindowBounds)
	})

	t.Run("multiplier below one", func(t *testing.T) {
		_, err := loyalty.NewPromotionWindow("Penalty", start, end, 0.5)
		assert.ErrorIs(t, err, loyalty.ErrInvalidMultiplier)
	})
}
