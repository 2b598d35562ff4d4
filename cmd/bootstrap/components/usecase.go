package components

import (
	"petshop-loyalty/internal/pkg/clock"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewLoyaltyCommands,
		commands.NewSubscriptionCommands,
		commands.NewDeliveryCommands,
		commands.NewPromotionCommands,
		commands.NewCampaignCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLoyaltyQueries,
		queries.NewSubscriptionQueries,
		queries.NewSegmentQueries,
		queries.NewCampaignQueries,
		queries.NewDeliveryQueries,
		queries.NewPromotionQueries,
	),
)
