package bootstrap

import (
	"context"
	"log/slog"

	"petshop-loyalty/internal/pkg/config"
	"petshop-loyalty/internal/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		scheduler.NewMetrics,
		scheduler.NewRenewalScheduler,
	),
	fx.Invoke(startScheduler),
)

func startScheduler(lc fx.Lifecycle, s *scheduler.RenewalScheduler, cfg config.Config, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("renewal scheduler disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("renewal scheduler started", "interval", cfg.Scheduler.Interval)
			s.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			logger.Info("renewal scheduler stopped")
			return nil
		},
	})
}
