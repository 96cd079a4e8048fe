package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/coupon/service"
	"aguacates-backend/internal/shared/response"
)

// Handler handles HTTP requests for coupon validation.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Validate handles GET /coupons/validate?code=&cartTotal=&userEmail=
//
// Query parameter names match the legacy storefront so existing clients
// keep working.
func (h *Handler) Validate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Código de cupón requerido")
		return
	}

	cartTotal := decimal.Zero
	if raw := c.Query("cartTotal"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(c, "cartTotal inválido")
			return
		}
		cartTotal = parsed
	}
	if cartTotal.IsNegative() {
		response.BadRequest(c, "El total del carrito no puede ser negativo")
		return
	}

	result, err := h.service.Validate(c.Request.Context(), code, cartTotal, c.Query("userEmail"))
	if err != nil {
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, result)
}
