package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aguacates-backend/internal/domains/order/model"
	"aguacates-backend/internal/domains/order/service"
	"aguacates-backend/internal/shared/middleware"
	"aguacates-backend/internal/shared/response"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Checkout handles POST /orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Datos inválidos", err.Error())
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), middleware.GetSessionID(c), &req)
	if err != nil {
		if errors.Is(err, model.ErrEmptyCart) {
			response.ErrorResponse(c, http.StatusUnprocessableEntity, "EMPTY_CART", "El carrito está vacío")
			return
		}
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// GetByNumber handles GET /orders/:orderNumber
func (h *Handler) GetByNumber(c *gin.Context) {
	order, err := h.service.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			response.NotFound(c, "Pedido no encontrado")
			return
		}
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, order)
}
