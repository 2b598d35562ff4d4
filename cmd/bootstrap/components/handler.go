package components

import (
	"petshop-loyalty/internal/handler"
	"petshop-loyalty/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewLoyaltyHandler,
		api.NewSubscriptionHandler,
		api.NewDeliveryHandler,
		api.NewMarketingHandler,
		api.NewPromotionHandler,
	),
	fx.Invoke(handler.NewRouter),
)
