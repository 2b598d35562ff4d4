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

type MarketingHandler struct {
	campaignCommands commands.CampaignCommands
	campaignQueries  queries.CampaignQueries
	segmentQueries   queries.SegmentQueries
}

func NewMarketingHandler(
	campaignCommands commands.CampaignCommands,
	campaignQueries queries.CampaignQueries,
	segmentQueries queries.SegmentQueries,
) *MarketingHandler {
	return &MarketingHandler{
		campaignCommands: campaignCommands,
		campaignQueries:  campaignQueries,
		segmentQueries:   segmentQueries,
	}
}

// @Summary Register customers in a campaign
// @Description Register customers, skipping those already enrolled
// @Tags marketing
// @Accept json
// @Produce json
// @Param name path string true "Campaign name"
// @Param request body reqdto.RegisterCampaignRequest true "Registration request"
// @Success 200 {object} resdto.RegisterCampaignResponse
// @Failure 400 {object} map[string]string
// @Router /campaigns/{name}/registrations [post]
func (h *MarketingHandler) RegisterCampaign(c *gin.Context) {
	campaignName := c.Param("name")

	var req reqdto.RegisterCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	registered, err := h.campaignCommands.Register(c.Request.Context(), campaignName, req.CustomerIDs)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCampaignName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign name must not be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.RegisterCampaignResponse{
		CampaignName:  campaignName,
		RegisteredIDs: registered,
		SkippedCount:  len(req.CustomerIDs) - len(registered),
	})
}

// @Summary List campaign registrations
// @Description List all campaign registrations
// @Tags marketing
// @Produce json
// @Success 200 {array} queries.CampaignRegistrationView
// @Router /campaigns [get]
func (h *MarketingHandler) ListRegistrations(c *gin.Context) {
	regs, err := h.campaignQueries.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, regs)
}

// @Summary List customer campaigns
// @Description List the campaigns a customer is registered in
// @Tags marketing
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 200 {array} queries.CampaignRegistrationView
// @Failure 400 {object} map[string]string
// @Router /customers/{customerId}/campaigns [get]
func (h *MarketingHandler) ListCustomerCampaigns(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID format"})
		return
	}

	regs, err := h.campaignQueries.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, regs)
}

// @Summary Compute customer segment
// @Description Find customers matching spend and purchase-count thresholds over a trailing period
// @Tags marketing
// @Accept json
// @Produce json
// @Param request body reqdto.SegmentRequest true "Segment criteria"
// @Success 200 {object} resdto.SegmentResponse
// @Failure 400 {object} map[string]string
// @Router /marketing/segments [post]
func (h *MarketingHandler) ComputeSegment(c *gin.Context) {
	var req reqdto.SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ids, err := h.segmentQueries.Segment(c.Request.Context(), queries.SegmentCriteria{
		MinTotalSpentCents: req.MinTotalSpentCents,
		MinPurchaseCount:   req.MinPurchaseCount,
		PeriodInMonths:     req.PeriodInMonths,
	})
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidSegmentCriteria):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid segment criteria"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SegmentResponse{CustomerIDs: ids})
}

// @Summary List lifetime values
// @Description List each customer's lifetime order value
// @Tags marketing
// @Produce json
// @Success 200 {array} queries.LifetimeValueView
// @Router /marketing/ltv [get]
func (h *MarketingHandler) ListLifetimeValues(c *gin.Context) {
	values, err := h.segmentQueries.LifetimeValues(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, values)
}

// @Summary List high-value customers
// @Description List customers above both a lifetime value and a points threshold
// @Tags marketing
// @Produce json
// @Param min_ltv_cents query int false "Minimum lifetime value in cents"
// @Param min_points query int false "Minimum points balance"
// @Success 200 {array} queries.HighValueCustomerView
// @Failure 400 {object} map[string]string
// @Router /marketing/high-value-customers [get]
func (h *MarketingHandler) ListHighValueCustomers(c *gin.Context) {
	minLTV, err := strconv.ParseInt(c.DefaultQuery("min_ltv_cents", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_ltv_cents"})
		return
	}
	minPoints, err := strconv.Atoi(c.DefaultQuery("min_points", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_points"})
		return
	}

	customers, err := h.segmentQueries.HighValueCustomers(c.Request.Context(), minLTV, minPoints)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidSegmentCriteria):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thresholds"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, customers)
}
