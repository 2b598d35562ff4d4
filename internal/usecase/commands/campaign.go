package commands

import (
	"context"

	"petshop-loyalty/internal/domain/campaign"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/errs"
	"petshop-loyalty/internal/usecase/shared"
)

var ErrInvalidCampaignName = errs.New("campaign name must not be empty")

type CampaignCommands interface {
	// Register enrolls the given customers in a campaign. Customers already
	// enrolled are skipped; the returned slice holds only the newly
	// registered ids. An empty customer list is a no-op success.
	Register(ctx context.Context, campaignName string, customerIDs []int64) ([]int64, error)
}

type campaignCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCampaignCommands(uow shared.UnitOfWork, clk clock.Clock) CampaignCommands {
	return &campaignCommandsImpl{uow: uow, clock: clk}
}

func (c *campaignCommandsImpl) Register(ctx context.Context, campaignName string, customerIDs []int64) ([]int64, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	now := c.clock.Now()
	regs := make([]campaign.Registration, 0, len(customerIDs))
	seen := make(map[int64]struct{}, len(customerIDs))
	for _, id := range customerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		reg, err := campaign.NewRegistration(id, campaignName, now)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidCampaignName)
		}
		regs = append(regs, reg)
	}

	var registered []int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Campaigns().RegisterBatch(ctx, tx.DB(), regs)
		if err != nil {
			return err
		}
		registered = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registered, nil
}
