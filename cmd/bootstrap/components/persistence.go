package components

import (
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/infra/readstore"
	"petshop-loyalty/internal/infra/repository"
	"petshop-loyalty/internal/infra/uow"
	"petshop-loyalty/internal/notify"
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/usecase/queries"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(shared.NotificationRepository)),
		),
		fx.Annotate(
			repository.NewAccountRepository,
			fx.As(new(shared.AccountRepository)),
		),
		NewNotificationSink,
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewLoyaltyReadStore,
			fx.As(new(queries.LoyaltyReadStore)),
		),
		fx.Annotate(
			readstore.NewSubscriptionReadStore,
			fx.As(new(queries.SubscriptionReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewCampaignReadStore,
			fx.As(new(queries.CampaignReadStore)),
		),
		fx.Annotate(
			readstore.NewDeliveryReadStore,
			fx.As(new(queries.DeliveryReadStore)),
		),
		fx.Annotate(
			readstore.NewPromotionReadStore,
			fx.As(new(queries.PromotionReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewNotificationSink(jobs shared.NotificationRepository, clk clock.Clock) notify.Sink {
	return notify.NewJobSink(jobs, clk.Now)
}
