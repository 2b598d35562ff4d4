package api

import (
	"errors"
	"net/http"

	reqdto "petshop-loyalty/internal/handler/dto/request"
	resdto "petshop-loyalty/internal/handler/dto/response"
	"petshop-loyalty/internal/usecase/commands"
	"petshop-loyalty/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotionCommands commands.PromotionCommands
	promotionQueries  queries.PromotionQueries
}

func NewPromotionHandler(promotionCommands commands.PromotionCommands, promotionQueries queries.PromotionQueries) *PromotionHandler {
	return &PromotionHandler{
		promotionCommands: promotionCommands,
		promotionQueries:  promotionQueries,
	}
}

// @Summary Create promotion window
// @Description Create a promotional window with a points multiplier
// @Tags promotions
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePromotionRequest true "Promotion request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req reqdto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.promotionCommands.CreateWindow(c.Request.Context(), req.Name, req.StartDate, req.EndDate, req.Multiplier)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPromotionWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion window"})
		case errors.Is(err, commands.ErrPromotionNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Promotion window name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List promotion windows
// @Description List all configured promotion windows
// @Tags promotions
// @Produce json
// @Success 200 {array} queries.PromotionWindowView
// @Router /promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	windows, err := h.promotionQueries.ListWindows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, windows)
}
