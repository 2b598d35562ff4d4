//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"petshop-loyalty/internal/domain/delivery"
	"petshop-loyalty/internal/notify"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeliveryCommands(t *testing.T, uow *fakes.UoW) commands.DeliveryCommands {
	t.Helper()
	clk := clock.NewMockClock(testTime)
	sink := notify.NewJobSink(uow.NotificationRepo(), clk.Now)
	return commands.NewDeliveryCommands(uow, sink, clk)
}

func topics(uow *fakes.UoW) []string {
	var out []string
	for _, job := range uow.Jobs {
		out = append(out, job.Topic)
	}
	return out
}

func TestDeliveryCommands_Schedule(t *testing.T) {
	ctx := context.Background()
	deliveryDate := testTime.AddDate(0, 0, 3)

	t.Run("schedules delivery and emits event", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)

		id, err := cmd.Schedule(ctx, 7, "1 Main St", deliveryDate, []string{"dog food"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, 1, uow.DeliveryCount())

		require.Len(t, uow.Jobs, 1)
		assert.Equal(t, notify.TopicDeliveryScheduled, uow.Jobs[0].Topic)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(uow.Jobs[0].Payload, &payload))
		assert.Equal(t, id.String(), payload["delivery_id"])
	})

	t.Run("empty address falls back to stored one", func(t *testing.T) {
		uow := fakes.NewUoW()
		uow.Addresses[7] = "2 Oak Ave"
		cmd := newDeliveryCommands(t, uow)

		_, err := cmd.Schedule(ctx, 7, "", deliveryDate, []string{"dog food"})
		require.NoError(t, err)
		assert.Equal(t, "2 Oak Ave", uow.Deliveries[0].Address())
	})

	t.Run("unknown customer with no address", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)

		_, err := cmd.Schedule(ctx, 99, "", deliveryDate, []string{"dog food"})
		assert.ErrorIs(t, err, commands.ErrCustomerNotFound)
	})

	t.Run("empty item list", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)

		_, err := cmd.Schedule(ctx, 7, "1 Main St", deliveryDate, nil)
		assert.ErrorIs(t, err, commands.ErrInvalidDelivery)
		assert.Empty(t, uow.Jobs)
	})
}

func TestDeliveryCommands_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	scheduled := func(t *testing.T) (*fakes.UoW, commands.DeliveryCommands, uuid.UUID) {
		t.Helper()
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)
		id, err := cmd.Schedule(ctx, 7, "1 Main St", testTime.AddDate(0, 0, 3), []string{"dog food"})
		require.NoError(t, err)
		return uow, cmd, id
	}

	t.Run("updates status and emits event", func(t *testing.T) {
		uow, cmd, id := scheduled(t)

		require.NoError(t, cmd.UpdateStatus(ctx, id, "shipped"))
		assert.Equal(t, delivery.StatusShipped, uow.Deliveries[0].Status())
		assert.Contains(t, topics(uow), notify.TopicStatusUpdate)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, cmd, id := scheduled(t)
		assert.ErrorIs(t, cmd.UpdateStatus(ctx, id, "returned"), commands.ErrInvalidDeliveryStatus)
	})

	t.Run("unknown delivery", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)
		assert.ErrorIs(t, cmd.UpdateStatus(ctx, uuid.New(), "shipped"), commands.ErrDeliveryNotFound)
	})
}

func TestDeliveryCommands_RecordLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("appends tracking point and emits event", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)
		id, err := cmd.Schedule(ctx, 7, "1 Main St", testTime.AddDate(0, 0, 3), []string{"dog food"})
		require.NoError(t, err)

		require.NoError(t, cmd.RecordLocation(ctx, id, 35.6812, 139.7671))

		require.Len(t, uow.Locations, 1)
		assert.Equal(t, id, uow.Locations[0].DeliveryID)
		assert.Equal(t, 35.6812, uow.Locations[0].Latitude)
		assert.Contains(t, topics(uow), notify.TopicLocationUpdate)
	})

	t.Run("unknown delivery", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newDeliveryCommands(t, uow)
		assert.ErrorIs(t, cmd.RecordLocation(ctx, uuid.New(), 0, 0), commands.ErrDeliveryNotFound)
	})
}
