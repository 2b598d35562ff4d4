package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"petshop-loyalty/internal/domain/delivery"
	"petshop-loyalty/internal/notify"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/pkg/config"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RenewalScheduler periodically scans for subscriptions whose next delivery
// date has arrived, materializes one delivery per due occurrence and advances
// the subscription. Each subscription is processed in its own transaction so
// one failure never poisons the batch, and the delivery's occurrence key
// makes reprocessing idempotent.
type RenewalScheduler struct {
	uow     shared.UnitOfWork
	sink    notify.Sink
	clock   clock.Clock
	cfg     config.SchedulerConfig
	policy  config.LoyaltyConfig
	metrics *Metrics
	logger  *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewRenewalScheduler(
	uow shared.UnitOfWork,
	sink notify.Sink,
	clk clock.Clock,
	cfg config.SchedulerConfig,
	policy config.LoyaltyConfig,
	metrics *Metrics,
	logger *slog.Logger,
) *RenewalScheduler {
	return &RenewalScheduler{
		uow:     uow,
		sink:    sink,
		clock:   clk,
		cfg:     cfg,
		policy:  policy,
		metrics: metrics,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Start launches the scan loop. The first scan runs immediately.
func (s *RenewalScheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		s.runScan(ctx)
		for {
			select {
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runScan(ctx)
			}
		}
	}()
}

func (s *RenewalScheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *RenewalScheduler) runScan(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.ErrorContext(ctx, "renewal scan failed", "error", err)
	}
}

// RunOnce executes a single scan and reports how many deliveries it created.
// The returned error covers only the due-subscription query; per-subscription
// failures are logged and counted without aborting the scan.
func (s *RenewalScheduler) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		s.metrics.scanDurationSecond.Observe(time.Since(start).Seconds())
	}()
	s.metrics.scans.Inc()

	now := s.clock.Now()
	ids, err := s.uow.CommandReads().DueSubscriptionIDs(ctx, now, s.cfg.BatchLimit)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	s.metrics.subscriptionsDue.Add(float64(len(ids)))

	var (
		mu      sync.Mutex
		created int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, id := range ids {
		g.Go(func() error {
			ok, err := s.processSubscription(gctx, id, now)
			if err != nil {
				s.metrics.renewalFailures.Inc()
				s.logger.ErrorContext(gctx, "subscription renewal failed",
					"subscription_id", id,
					"error", err,
				)
				return nil
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.InfoContext(ctx, "renewal scan complete",
		"due", len(ids),
		"deliveries_created", created,
		"elapsed", time.Since(start),
	)
	return created, nil
}

// processSubscription handles one due subscription in its own transaction.
// Reports whether a delivery was materialized.
func (s *RenewalScheduler) processSubscription(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var created bool
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub, err := tx.Subscriptions().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		// Re-check under the lock: a concurrent scan may already have
		// advanced this subscription.
		if !sub.IsDue(now) {
			return nil
		}

		address, err := tx.Reads().CustomerAddress(ctx, sub.CustomerID())
		if err != nil {
			return err
		}
		product, err := tx.Reads().ProductByID(ctx, sub.ProductID())
		if err != nil {
			return err
		}

		occ := delivery.Occurrence{SubscriptionID: sub.ID(), Date: sub.NextDeliveryDate()}
		d, err := delivery.NewFromOccurrence(occ, sub.CustomerID(), address, []string{product.Name}, now)
		if err != nil {
			return err
		}

		inserted, err := tx.Deliveries().CreateFromOccurrence(ctx, tx.DB(), d)
		if err != nil {
			return err
		}

		if err := sub.Renew(now); err != nil {
			return err
		}
		if err := tx.Subscriptions().Update(ctx, tx.DB(), sub); err != nil {
			return err
		}

		if inserted {
			if err := s.sink.Emit(ctx, tx.DB(), notify.Event{
				Topic:      notify.TopicDeliveryScheduled,
				DeliveryID: d.ID(),
				Payload: map[string]any{
					"subscription_id": sub.ID(),
					"customer_id":     sub.CustomerID(),
					"delivery_date":   d.DeliveryDate().Format(time.RFC3339),
				},
			}); err != nil {
				return err
			}
			// Renewal points land in the same transaction: a rollback takes
			// delivery, date advance and credit back together.
			if s.policy.RenewalPoints > 0 {
				if _, err := tx.Accounts().Credit(ctx, tx.DB(), sub.CustomerID(), s.policy.RenewalPoints); err != nil {
					return err
				}
			}
		}

		created = inserted
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		s.metrics.deliveriesCreated.Inc()
	}
	return created, nil
}
