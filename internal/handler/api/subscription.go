package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "petshop-loyalty/internal/handler/dto/request"
	resdto "petshop-loyalty/internal/handler/dto/response"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubscriptionHandler struct {
	subscriptionCommands commands.SubscriptionCommands
	subscriptionQueries  queries.SubscriptionQueries
}

func NewSubscriptionHandler(subscriptionCommands commands.SubscriptionCommands, subscriptionQueries queries.SubscriptionQueries) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionCommands: subscriptionCommands,
		subscriptionQueries:  subscriptionQueries,
	}
}

// @Summary Create subscription
// @Description Create a recurring product subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSubscriptionRequest true "Subscription request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req reqdto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.subscriptionCommands.Create(c.Request.Context(), req.CustomerID, req.ProductID, req.Frequency, req.FirstDeliveryDate)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidFrequency):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription frequency"})
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Get subscription
// @Description Get a subscription by ID
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} queries.SubscriptionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID format"})
		return
	}

	view, err := h.subscriptionQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List customer subscriptions
// @Description List all subscriptions of a customer
// @Tags subscriptions
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 200 {array} queries.SubscriptionView
// @Failure 400 {object} map[string]string
// @Router /customers/{customerId}/subscriptions [get]
func (h *SubscriptionHandler) ListCustomerSubscriptions(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	views, err := h.subscriptionQueries.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Cancel subscription
// @Description Cancel an active subscription; cancellation is terminal
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID format"})
		return
	}

	if err := h.subscriptionCommands.Cancel(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		case errors.Is(err, commands.ErrSubscriptionCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Renew subscription
// @Description Advance the next delivery date by one period, optionally redeeming points for a discount
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body reqdto.RenewSubscriptionRequest false "Renewal options"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /subscriptions/{id}/renewals [post]
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID format"})
		return
	}

	var req reqdto.RenewSubscriptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	if req.RedeemPoints > 0 {
		err = h.subscriptionCommands.RenewWithDiscount(c.Request.Context(), id, req.RedeemPoints)
	} else {
		err = h.subscriptionCommands.Renew(c.Request.Context(), id, req.CreditPoints)
	}
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		case errors.Is(err, commands.ErrSubscriptionNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription is not active"})
		case errors.Is(err, commands.ErrInvalidRedeemAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Redeem amount out of policy bounds"})
		case errors.Is(err, commands.ErrInvalidCreditAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Credit amount must be non-negative"})
		case errors.Is(err, commands.ErrInsufficientPoints):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient points"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
