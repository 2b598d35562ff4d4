package commands

import (
	"context"
	"log/slog"
	"time"

	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/domain/subscription"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/config"
	"petshop-loyalty/internal/pkg/errs"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSubscriptionNotFound  = errs.New("subscription not found")
	ErrInvalidFrequency      = errs.New("invalid subscription frequency")
	ErrSubscriptionCancelled = errs.New("subscription is already cancelled")
	ErrSubscriptionNotActive = errs.New("subscription is not active")
	ErrProductNotFound       = errs.New("product not found")
)

type SubscriptionCommands interface {
	// Create opens a subscription and credits the signup bonus. The credit is
	// best effort: a failure after the subscription committed is logged, not
	// surfaced.
	Create(ctx context.Context, customerID int64, productID uuid.UUID, frequency string, firstDeliveryDate time.Time) (uuid.UUID, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	// Renew advances the next delivery date by one period and credits
	// pointsToCredit best effort. Zero credits nothing.
	Renew(ctx context.Context, id uuid.UUID, pointsToCredit int) error
	// RenewWithDiscount redeems points and advances the subscription in a
	// single transaction. The debit is a precondition: a short balance aborts
	// the renewal.
	RenewWithDiscount(ctx context.Context, id uuid.UUID, redeemPoints int) error
}

type subscriptionCommandsImpl struct {
	uow     shared.UnitOfWork
	loyalty LoyaltyCommands
	clock   clock.Clock
	policy  config.LoyaltyConfig
	logger  *slog.Logger
}

func NewSubscriptionCommands(
	uow shared.UnitOfWork,
	loyaltyCmd LoyaltyCommands,
	clk clock.Clock,
	policy config.LoyaltyConfig,
	logger *slog.Logger,
) SubscriptionCommands {
	return &subscriptionCommandsImpl{
		uow:     uow,
		loyalty: loyaltyCmd,
		clock:   clk,
		policy:  policy,
		logger:  logger,
	}
}

func (c *subscriptionCommandsImpl) Create(ctx context.Context, customerID int64, productID uuid.UUID, frequency string, firstDeliveryDate time.Time) (uuid.UUID, error) {
	freq, err := subscription.ParseFrequency(frequency)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidFrequency)
	}

	sub, err := subscription.NewSubscription(customerID, productID, freq, firstDeliveryDate, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidFrequency)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Subscriptions().Create(ctx, tx.DB(), sub); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrProductNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.creditBestEffort(ctx, customerID, c.policy.SignupPoints, "signup bonus")
	return sub.ID(), nil
}

func (c *subscriptionCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, err := c.lockSubscription(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := sub.Cancel(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrSubscriptionCancelled)
		}
		return tx.Subscriptions().Update(ctx, tx.DB(), sub)
	})
}

func (c *subscriptionCommandsImpl) Renew(ctx context.Context, id uuid.UUID, pointsToCredit int) error {
	if pointsToCredit < 0 {
		return errs.Mark(loyalty.ErrNegativePoints, ErrInvalidCreditAmount)
	}
	var customerID int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, err := c.lockSubscription(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := sub.Renew(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrSubscriptionNotActive)
		}
		if err := tx.Subscriptions().Update(ctx, tx.DB(), sub); err != nil {
			return err
		}
		customerID = sub.CustomerID()
		return nil
	})
	if err != nil {
		return err
	}

	c.creditBestEffort(ctx, customerID, pointsToCredit, "renewal credit")
	return nil
}

func (c *subscriptionCommandsImpl) RenewWithDiscount(ctx context.Context, id uuid.UUID, redeemPoints int) error {
	if err := loyalty.ValidateRedeem(redeemPoints, c.policy.MinRedeem, c.policy.MaxRedeem); err != nil {
		return errs.Mark(err, ErrInvalidRedeemAmount)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, err := c.lockSubscription(ctx, tx, id)
		if err != nil {
			return err
		}
		if !sub.IsActive() {
			return ErrSubscriptionNotActive
		}

		if _, err := tx.Accounts().Debit(ctx, tx.DB(), sub.CustomerID(), redeemPoints); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInsufficientPoints
			}
			return err
		}

		if err := sub.Renew(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrSubscriptionNotActive)
		}
		return tx.Subscriptions().Update(ctx, tx.DB(), sub)
	})
}

func (c *subscriptionCommandsImpl) lockSubscription(ctx context.Context, tx shared.Tx, id uuid.UUID) (*subscription.Subscription, error) {
	sub, err := tx.Subscriptions().FindByIDForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (c *subscriptionCommandsImpl) creditBestEffort(ctx context.Context, customerID int64, points int, reason string) {
	if points <= 0 {
		return
	}
	if _, err := c.loyalty.Credit(ctx, customerID, points, false); err != nil {
		c.logger.WarnContext(ctx, "points credit failed after commit",
			"reason", reason,
			"customer_id", customerID,
			"points", points,
			"error", err,
		)
	}
}
