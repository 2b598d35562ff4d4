//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotionCommands_CreateWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("creates window", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := commands.NewPromotionCommands(uow)

		id, err := cmd.CreateWindow(ctx, "Holiday Special", start, end, 2.0)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		require.Len(t, uow.Windows, 1)
		assert.Equal(t, "Holiday Special", uow.Windows[0].Name())
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := commands.NewPromotionCommands(uow)

		_, err := cmd.CreateWindow(ctx, "Holiday Special", start, end, 2.0)
		require.NoError(t, err)

		_, err = cmd.CreateWindow(ctx, "Holiday Special", start, end, 3.0)
		assert.ErrorIs(t, err, commands.ErrPromotionNameTaken)
	})

	t.Run("invalid bounds rejected", func(t *testing.T) {
		uow := fakes.NewUoW()
		cmd := commands.NewPromotionCommands(uow)

		_, err := cmd.CreateWindow(ctx, "Backwards", end, start, 2.0)
		assert.ErrorIs(t, err, commands.ErrInvalidPromotionWindow)

		_, err = cmd.CreateWindow(ctx, "Penalty", start, end, 0.5)
		assert.ErrorIs(t, err, commands.ErrInvalidPromotionWindow)
	})
}
