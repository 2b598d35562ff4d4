package commands

import (
	"context"
	"time"

	"petshop-loyalty/internal/domain/delivery"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/notify"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/errs"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDeliveryNotFound      = errs.New("delivery not found")
	ErrInvalidDeliveryStatus = errs.New("invalid delivery status")
	ErrInvalidDelivery       = errs.New("invalid delivery")
	ErrCustomerNotFound      = errs.New("customer not found")
)

type DeliveryCommands interface {
	// Schedule creates a one-off delivery. An empty address falls back to the
	// customer's stored address.
	Schedule(ctx context.Context, customerID int64, address string, deliveryDate time.Time, items []string) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	RecordLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error
}

type deliveryCommandsImpl struct {
	uow   shared.UnitOfWork
	sink  notify.Sink
	clock clock.Clock
}

func NewDeliveryCommands(uow shared.UnitOfWork, sink notify.Sink, clk clock.Clock) DeliveryCommands {
	return &deliveryCommandsImpl{uow: uow, sink: sink, clock: clk}
}

func (c *deliveryCommandsImpl) Schedule(ctx context.Context, customerID int64, address string, deliveryDate time.Time, items []string) (uuid.UUID, error) {
	if address == "" {
		stored, err := c.uow.CommandReads().CustomerAddress(ctx, customerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, ErrCustomerNotFound
			}
			return uuid.Nil, err
		}
		address = stored
	}

	d, err := delivery.NewDelivery(customerID, address, deliveryDate, items, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidDelivery)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Deliveries().Create(ctx, tx.DB(), d); err != nil {
			return err
		}
		return c.sink.Emit(ctx, tx.DB(), notify.Event{
			Topic:      notify.TopicDeliveryScheduled,
			DeliveryID: d.ID(),
			Payload: map[string]any{
				"customer_id":   d.CustomerID(),
				"delivery_date": d.DeliveryDate().Format(time.RFC3339),
			},
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return d.ID(), nil
}

func (c *deliveryCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	st, err := delivery.ParseStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidDeliveryStatus)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Deliveries().UpdateStatus(ctx, tx.DB(), id, st); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrDeliveryNotFound
			}
			return err
		}
		return c.sink.Emit(ctx, tx.DB(), notify.Event{
			Topic:      notify.TopicStatusUpdate,
			DeliveryID: id,
			Payload:    map[string]any{"status": st.String()},
		})
	})
}

func (c *deliveryCommandsImpl) RecordLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error {
	loc := delivery.Location{
		DeliveryID: id,
		Latitude:   latitude,
		Longitude:  longitude,
		RecordedAt: c.clock.Now(),
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Deliveries().RecordLocation(ctx, tx.DB(), loc); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrDeliveryNotFound
			}
			return err
		}
		return c.sink.Emit(ctx, tx.DB(), notify.Event{
			Topic:      notify.TopicLocationUpdate,
			DeliveryID: id,
			Payload: map[string]any{
				"latitude":  latitude,
				"longitude": longitude,
			},
		})
	})
}
