package api

import (
	"errors"
	"net/http"

	reqdto "petshop-loyalty/internal/handler/dto/request"
	resdto "petshop-loyalty/internal/handler/dto/response"
	"petshop-loyalty/internal/handler/httperr"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeliveryHandler struct {
	deliveryCommands commands.DeliveryCommands
	deliveryQueries  queries.DeliveryQueries
}

func NewDeliveryHandler(deliveryCommands commands.DeliveryCommands, deliveryQueries queries.DeliveryQueries) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryCommands: deliveryCommands,
		deliveryQueries:  deliveryQueries,
	}
}

// @Summary Schedule delivery
// @Description Schedule a one-off delivery; an empty address falls back to the customer's stored one
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body reqdto.ScheduleDeliveryRequest true "Delivery request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /deliveries [post]
func (h *DeliveryHandler) ScheduleDelivery(c *gin.Context) {
	var req reqdto.ScheduleDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.deliveryCommands.Schedule(c.Request.Context(), req.CustomerID, req.Address, req.DeliveryDate, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCustomerNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Customer not found", nil)
		case errors.Is(err, commands.ErrInvalidDelivery):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid delivery", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update delivery status
// @Description Update a delivery's status (pending, shipped, delivered)
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path string true "Delivery ID"
// @Param request body reqdto.UpdateDeliveryStatusRequest true "Status request"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid delivery ID format", nil)
		return
	}

	var req reqdto.UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.deliveryCommands.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidDeliveryStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid delivery status", nil)
		case errors.Is(err, commands.ErrDeliveryNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Delivery not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Record delivery location
// @Description Append a tracking point to a delivery's location history
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path string true "Delivery ID"
// @Param request body reqdto.RecordLocationRequest true "Location request"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /deliveries/{id}/location [post]
func (h *DeliveryHandler) RecordLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid delivery ID format", nil)
		return
	}

	var req reqdto.RecordLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.deliveryCommands.RecordLocation(c.Request.Context(), id, req.Latitude, req.Longitude); err != nil {
		switch {
		case errors.Is(err, commands.ErrDeliveryNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Delivery not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get location history
// @Description Get the recorded tracking points of a delivery
// @Tags deliveries
// @Produce json
// @Param id path string true "Delivery ID"
// @Success 200 {array} queries.DeliveryLocationView
// @Failure 400 {object} httperr.Response
// @Router /deliveries/{id}/locations [get]
func (h *DeliveryHandler) GetLocationHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid delivery ID format", nil)
		return
	}

	history, err := h.deliveryQueries.LocationHistory(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, history)
}
