package commands

import (
	"context"
	"time"

	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/pkg/errs"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidPromotionWindow = errs.New("invalid promotion window")
	ErrPromotionNameTaken     = errs.New("promotion window name already exists")
)

type PromotionCommands interface {
	CreateWindow(ctx context.Context, name string, startDate, endDate time.Time, multiplier float64) (uuid.UUID, error)
}

type promotionCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPromotionCommands(uow shared.UnitOfWork) PromotionCommands {
	return &promotionCommandsImpl{uow: uow}
}

func (c *promotionCommandsImpl) CreateWindow(ctx context.Context, name string, startDate, endDate time.Time, multiplier float64) (uuid.UUID, error) {
	w, err := loyalty.NewPromotionWindow(name, startDate, endDate, multiplier)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidPromotionWindow)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Promotions().Create(ctx, tx.DB(), w); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrPromotionNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return w.ID(), nil
}
