package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "petshop-loyalty/internal/handler/dto/request"
	resdto "petshop-loyalty/internal/handler/dto/response"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	loyaltyCommands commands.LoyaltyCommands
	loyaltyQueries  queries.LoyaltyQueries
}

func NewLoyaltyHandler(loyaltyCommands commands.LoyaltyCommands, loyaltyQueries queries.LoyaltyQueries) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyCommands: loyaltyCommands,
		loyaltyQueries:  loyaltyQueries,
	}
}

// @Summary Credit points
// @Description Credit points to a customer, optionally applying the active promotion multiplier
// @Tags loyalty
// @Accept json
// @Produce json
// @Param request body reqdto.CreditPointsRequest true "Credit request"
// @Success 200 {object} resdto.CreditPointsResponse
// @Failure 400 {object} map[string]string
// @Router /loyalty/credits [post]
func (h *LoyaltyHandler) CreditPoints(c *gin.Context) {
	var req reqdto.CreditPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.loyaltyCommands.Credit(c.Request.Context(), req.CustomerID, req.Points, req.ApplyBonus)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCreditAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Points must not be negative"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCreditResult(result))
}

// @Summary Redeem points
// @Description Redeem points from a customer's balance
// @Tags loyalty
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemPointsRequest true "Redeem request"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /loyalty/redemptions [post]
func (h *LoyaltyHandler) RedeemPoints(c *gin.Context) {
	var req reqdto.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	balance, err := h.loyaltyCommands.Debit(c.Request.Context(), req.CustomerID, req.Points)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRedeemAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Redeem amount out of policy bounds"})
		case errors.Is(err, commands.ErrInsufficientPoints):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient points"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{CustomerID: req.CustomerID, Balance: balance})
}

// @Summary Get balance
// @Description Get a customer's points balance; customers without an account have a zero balance
// @Tags loyalty
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Router /loyalty/accounts/{customerId}/balance [get]
func (h *LoyaltyHandler) GetBalance(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	balance, err := h.loyaltyQueries.BalanceOf(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{CustomerID: customerID, Balance: balance})
}

// @Summary List accounts
// @Description List all loyalty accounts
// @Tags loyalty
// @Produce json
// @Success 200 {array} queries.LoyaltyAccountView
// @Router /loyalty/accounts [get]
func (h *LoyaltyHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.loyaltyQueries.ListAccounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}
