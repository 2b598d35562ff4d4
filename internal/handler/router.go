package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"petshop-loyalty/internal/handler/api"
	"petshop-loyalty/internal/handler/middleware"
	"petshop-loyalty/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	registry *prometheus.Registry,
	loyaltyHandler *api.LoyaltyHandler,
	subscriptionHandler *api.SubscriptionHandler,
	deliveryHandler *api.DeliveryHandler,
	marketingHandler *api.MarketingHandler,
	promotionHandler *api.PromotionHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, registry, loyaltyHandler, subscriptionHandler, deliveryHandler, marketingHandler, promotionHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	registry *prometheus.Registry,
	loyaltyHandler *api.LoyaltyHandler,
	subscriptionHandler *api.SubscriptionHandler,
	deliveryHandler *api.DeliveryHandler,
	marketingHandler *api.MarketingHandler,
	promotionHandler *api.PromotionHandler,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		loyalty := apiGroup.Group("/loyalty")
		{
			addRoutes(loyalty, []route{
				{Method: http.MethodPost, Path: "/credits", Handler: loyaltyHandler.CreditPoints},
				{Method: http.MethodPost, Path: "/redemptions", Handler: loyaltyHandler.RedeemPoints},
				{Method: http.MethodGet, Path: "/accounts", Handler: loyaltyHandler.ListAccounts},
				{Method: http.MethodGet, Path: "/accounts/:customerId/balance", Handler: loyaltyHandler.GetBalance},
			})
		}

		subscriptions := apiGroup.Group("/subscriptions")
		{
			addRoutes(subscriptions, []route{
				{Method: http.MethodPost, Path: "", Handler: subscriptionHandler.CreateSubscription},
				{Method: http.MethodGet, Path: "/:id", Handler: subscriptionHandler.GetSubscription},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: subscriptionHandler.CancelSubscription},
				{Method: http.MethodPost, Path: "/:id/renewals", Handler: subscriptionHandler.RenewSubscription},
			})
		}

		deliveries := apiGroup.Group("/deliveries")
		{
			addRoutes(deliveries, []route{
				{Method: http.MethodPost, Path: "", Handler: deliveryHandler.ScheduleDelivery},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: deliveryHandler.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/location", Handler: deliveryHandler.RecordLocation},
				{Method: http.MethodGet, Path: "/:id/locations", Handler: deliveryHandler.GetLocationHistory},
			})
		}

		customers := apiGroup.Group("/customers")
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "/:customerId/subscriptions", Handler: subscriptionHandler.ListCustomerSubscriptions},
				{Method: http.MethodGet, Path: "/:customerId/campaigns", Handler: marketingHandler.ListCustomerCampaigns},
			})
		}

		campaigns := apiGroup.Group("/campaigns")
		{
			addRoutes(campaigns, []route{
				{Method: http.MethodGet, Path: "", Handler: marketingHandler.ListRegistrations},
				{Method: http.MethodPost, Path: "/:name/registrations", Handler: marketingHandler.RegisterCampaign},
			})
		}

		marketing := apiGroup.Group("/marketing")
		{
			addRoutes(marketing, []route{
				{Method: http.MethodPost, Path: "/segments", Handler: marketingHandler.ComputeSegment},
				{Method: http.MethodGet, Path: "/ltv", Handler: marketingHandler.ListLifetimeValues},
				{Method: http.MethodGet, Path: "/high-value-customers", Handler: marketingHandler.ListHighValueCustomers},
			})
		}

		promotions := apiGroup.Group("/promotions")
		{
			addRoutes(promotions, []route{
				{Method: http.MethodPost, Path: "", Handler: promotionHandler.CreatePromotion},
				{Method: http.MethodGet, Path: "", Handler: promotionHandler.ListPromotions},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
