package commands

import (
	"context"

	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/config"
	"petshop-loyalty/internal/pkg/errs"
	"petshop-loyalty/internal/usecase/shared"
)

var (
	ErrInvalidCreditAmount = errs.New("credit amount must not be negative")
	ErrInvalidRedeemAmount = errs.New("redeem amount out of policy bounds")
	ErrInsufficientPoints  = errs.New("insufficient points")
)

type CreditResult struct {
	FinalPoints int
	Multiplier  float64
	NewBalance  int
}

type LoyaltyCommands interface {
	// Credit adds rawPoints to the customer's balance. With applyBonus the
	// active promotion multiplier is applied first; the credited amount is
	// truncated to whole points.
	Credit(ctx context.Context, customerID int64, rawPoints int, applyBonus bool) (*CreditResult, error)
	// Debit redeems points within the policy bounds.
	Debit(ctx context.Context, customerID int64, points int) (newBalance int, err error)
}

type loyaltyCommandsImpl struct {
	uow      shared.UnitOfWork
	accounts shared.AccountRepository
	clock    clock.Clock
	policy   config.LoyaltyConfig
}

func NewLoyaltyCommands(uow shared.UnitOfWork, accounts shared.AccountRepository, clk clock.Clock, policy config.LoyaltyConfig) LoyaltyCommands {
	return &loyaltyCommandsImpl{uow: uow, accounts: accounts, clock: clk, policy: policy}
}

func (c *loyaltyCommandsImpl) Credit(ctx context.Context, customerID int64, rawPoints int, applyBonus bool) (*CreditResult, error) {
	if err := loyalty.ValidateCredit(rawPoints); err != nil {
		return nil, errs.Mark(err, ErrInvalidCreditAmount)
	}

	multiplier := 1.0
	if applyBonus {
		windows, err := c.uow.CommandReads().ActivePromotionWindows(ctx, c.clock.Now())
		if err != nil {
			return nil, err
		}
		multiplier = loyalty.ActiveMultiplier(windows, c.clock.Now())
	}
	finalPoints := loyalty.FinalPoints(rawPoints, multiplier)

	// The credit is one conditional upsert, so an implicit transaction is
	// enough; no retry loop needed.
	var newBalance int
	err := c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		balance, err := c.accounts.Credit(ctx, dbtx, customerID, finalPoints)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreditResult{
		FinalPoints: finalPoints,
		Multiplier:  multiplier,
		NewBalance:  newBalance,
	}, nil
}

func (c *loyaltyCommandsImpl) Debit(ctx context.Context, customerID int64, points int) (int, error) {
	if err := loyalty.ValidateRedeem(points, c.policy.MinRedeem, c.policy.MaxRedeem); err != nil {
		return 0, errs.Mark(err, ErrInvalidRedeemAmount)
	}

	var newBalance int
	err := c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		balance, err := c.accounts.Debit(ctx, dbtx, customerID, points)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInsufficientPoints
			}
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
