//go:build unit

package delivery_test

import (
	"testing"
	"time"

	"petshop-loyalty/internal/domain/delivery"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "shipped", "delivered"} {
		st, err := delivery.ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, st.String())
	}

	for _, invalid := range []string{"", "returned", "Pending"} {
		_, err := delivery.ParseStatus(invalid)
		assert.ErrorIs(t, err, delivery.ErrInvalidStatus, "input %q", invalid)
	}
}

func TestNewDelivery(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deliveryDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("valid delivery starts pending", func(t *testing.T) {
		d, err := delivery.NewDelivery(7, "1 Main St", deliveryDate, []string{"dog food"}, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, d.ID())
		assert.Equal(t, delivery.StatusPending, d.Status())
		assert.Nil(t, d.Occurrence())
	})

	t.Run("empty address", func(t *testing.T) {
		_, err := delivery.NewDelivery(7, "   ", deliveryDate, []string{"dog food"}, now)
		assert.ErrorIs(t, err, delivery.ErrEmptyAddress)
	})

	t.Run("no items", func(t *testing.T) {
		_, err := delivery.NewDelivery(7, "1 Main St", deliveryDate, nil, now)
		assert.ErrorIs(t, err, delivery.ErrNoItems)
	})
}

func TestNewFromOccurrence(t *testing.T) {
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	occ := delivery.Occurrence{
		SubscriptionID: uuid.New(),
		Date:           time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}

	d, err := delivery.NewFromOccurrence(occ, 7, "1 Main St", []string{"cat litter"}, now)
	require.NoError(t, err)

	// The delivery date is the occurrence date, not the processing time.
	assert.Equal(t, occ.Date, d.DeliveryDate())
	require.NotNil(t, d.Occurrence())
	assert.Equal(t, occ, *d.Occurrence())
}
