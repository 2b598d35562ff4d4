//go:build unit

package subscription_test

import (
	"testing"
	"time"

	"petshop-loyalty/internal/domain/subscription"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFrequency(t *testing.T) {
	for _, valid := range []string{"weekly", "monthly", "bimonthly"} {
		f, err := subscription.ParseFrequency(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, f.String())
	}

	for _, invalid := range []string{"", "daily", "Weekly", "fortnightly"} {
		_, err := subscription.ParseFrequency(invalid)
		assert.ErrorIs(t, err, subscription.ErrInvalidFrequency, "input %q", invalid)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		current   time.Time
		frequency subscription.Frequency
		want      time.Time
	}{
		{
			name:      "weekly adds seven days",
			current:   date(2026, 3, 10),
			frequency: subscription.FrequencyWeekly,
			want:      date(2026, 3, 17),
		},
		{
			name:      "weekly crosses month boundary",
			current:   date(2026, 1, 28),
			frequency: subscription.FrequencyWeekly,
			want:      date(2026, 2, 4),
		},
		{
			name:      "monthly keeps day of month",
			current:   date(2026, 3, 15),
			frequency: subscription.FrequencyMonthly,
			want:      date(2026, 4, 15),
		},
		{
			name:      "monthly clamps to leap february",
			current:   date(2024, 1, 31),
			frequency: subscription.FrequencyMonthly,
			want:      date(2024, 2, 29),
		},
		{
			name:      "monthly clamps to plain february",
			current:   date(2023, 1, 31),
			frequency: subscription.FrequencyMonthly,
			want:      date(2023, 2, 28),
		},
		{
			name:      "monthly clamps thirty-one to thirty",
			current:   date(2026, 3, 31),
			frequency: subscription.FrequencyMonthly,
			want:      date(2026, 4, 30),
		},
		{
			name:      "bimonthly adds two calendar months",
			current:   date(2026, 1, 15),
			frequency: subscription.FrequencyBimonthly,
			want:      date(2026, 3, 15),
		},
		{
			name:      "bimonthly skips over short february",
			current:   date(2026, 1, 31),
			frequency: subscription.FrequencyBimonthly,
			want:      date(2026, 3, 31),
		},
		{
			name:      "bimonthly clamps december to february",
			current:   date(2023, 12, 31),
			frequency: subscription.FrequencyBimonthly,
			want:      date(2024, 2, 29),
		},
		{
			name:      "monthly year rollover",
			current:   date(2025, 12, 15),
			frequency: subscription.FrequencyMonthly,
			want:      date(2026, 1, 15),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subscription.Advance(tt.current, tt.frequency))
		})
	}
}

func TestAdvancePreservesClockTime(t *testing.T) {
	current := time.Date(2024, 1, 31, 9, 30, 15, 0, time.UTC)
	next := subscription.Advance(current, subscription.FrequencyMonthly)
	assert.Equal(t, time.Date(2024, 2, 29, 9, 30, 15, 0, time.UTC), next)
}

func TestSubscriptionLifecycle(t *testing.T) {
	now := date(2026, 3, 1)
	first := date(2026, 3, 10)

	newActive := func(t *testing.T) *subscription.Subscription {
		t.Helper()
		sub, err := subscription.NewSubscription(42, uuid.New(), subscription.FrequencyWeekly, first, now)
		require.NoError(t, err)
		return sub
	}

	t.Run("new subscription is active", func(t *testing.T) {
		sub := newActive(t)
		assert.True(t, sub.IsActive())
		assert.Equal(t, first, sub.NextDeliveryDate())
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		_, err := subscription.NewSubscription(42, uuid.New(), subscription.Frequency("daily"), first, now)
		assert.ErrorIs(t, err, subscription.ErrInvalidFrequency)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		sub := newActive(t)
		require.NoError(t, sub.Cancel(now))
		assert.Equal(t, subscription.StatusCancelled, sub.Status())

		assert.ErrorIs(t, sub.Cancel(now), subscription.ErrAlreadyCancelled)
	})

	t.Run("renew advances next delivery date", func(t *testing.T) {
		sub := newActive(t)
		require.NoError(t, sub.Renew(now))
		assert.Equal(t, first.AddDate(0, 0, 7), sub.NextDeliveryDate())
	})

	t.Run("cancelled subscription cannot renew", func(t *testing.T) {
		sub := newActive(t)
		require.NoError(t, sub.Cancel(now))
		assert.ErrorIs(t, sub.Renew(now), subscription.ErrNotActive)
	})

	t.Run("due check", func(t *testing.T) {
		sub := newActive(t)
		assert.False(t, sub.IsDue(first.AddDate(0, 0, -1)))
		assert.True(t, sub.IsDue(first))
		assert.True(t, sub.IsDue(first.AddDate(0, 0, 3)))

		require.NoError(t, sub.Cancel(now))
		assert.False(t, sub.IsDue(first))
	})
}
