//go:build unit

package commands_test

import (
	"context"
	"testing"

	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/tests/common/fakes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignCommands(t *testing.T, uow *fakes.UoW) commands.CampaignCommands {
	t.Helper()
	return commands.NewCampaignCommands(uow, clock.NewMockClock(testTime))
}

func TestCampaignCommands_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers all new customers", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newCampaignCommands(t, uow)

		registered, err := cmd.Register(ctx, "spring-sale", []int64{1, 2, 3})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 2, 3}, registered)
	})

	t.Run("skips already registered customers", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newCampaignCommands(t, uow)

		_, err := cmd.Register(ctx, "spring-sale", []int64{1, 2, 3})
		require.NoError(t, err)

		registered, err := cmd.Register(ctx, "spring-sale", []int64{2, 3, 4})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{4}, registered)
	})

	t.Run("same customer may join different campaigns", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newCampaignCommands(t, uow)

		_, err := cmd.Register(ctx, "spring-sale", []int64{1})
		require.NoError(t, err)

		registered, err := cmd.Register(ctx, "summer-sale", []int64{1})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1}, registered)
	})

	t.Run("duplicates within one request count once", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newCampaignCommands(t, uow)

		registered, err := cmd.Register(ctx, "spring-sale", []int64{5, 5, 5})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{5}, registered)
	})

	t.Run("empty customer list is a no-op", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newCampaignCommands(t, uow)

		registered, err := cmd.Register(ctx, "spring-sale", nil)
		require.NoError(t, err)
		assert.Empty(t, registered)
	})

	t.Run("blank campaign name", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := newCampaignCommands(t, uow)

		_, err := cmd.Register(ctx, "   ", []int64{1})
		assert.ErrorIs(t, err, commands.ErrInvalidCampaignName)
	})
}
