package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/shipping/model"
	"aguacates-backend/internal/domains/shipping/service"
)

// Handler handles HTTP requests for shipping quotes.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Calculate handles POST /shipping/calculate
//
// The response keeps the legacy storefront envelope
// {"success":bool,"shipping":{...}} because the cart engine consumes it
// over the wire and coerces every field independently.
func (h *Handler) Calculate(c *gin.Context) {
	var req model.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.CalculateResponse{
			Success: false,
			Error:   "Request body inválido",
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, model.CalculateResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	subtotal := decimal.NewFromFloat(*req.Subtotal)
	quote := h.service.Calculate(c.Request.Context(), subtotal, req.Location)

	c.JSON(http.StatusOK, model.CalculateResponse{
		Success:  true,
		Shipping: quote,
	})
}
