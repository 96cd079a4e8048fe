package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aguacates-backend/internal/domains/cart/engine"
	cartmodel "aguacates-backend/internal/domains/cart/model"
	"aguacates-backend/internal/domains/cart/service"
	catalogmodel "aguacates-backend/internal/domains/catalog/model"
	"aguacates-backend/internal/shared/middleware"
	"aguacates-backend/internal/shared/response"
)

// Handler handles HTTP requests for the session cart.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetCart handles GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// GetTotals handles GET /cart/totals
func (h *Handler) GetTotals(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, cart.Totals())
}

// AddItem handles POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req cartmodel.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Datos inválidos", err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "product_id inválido")
		return
	}
	variantID, ok := parseOptionalUUID(req.VariantID)
	if !ok {
		response.BadRequest(c, "variant_id inválido")
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), middleware.GetSessionID(c), productID, variantID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// UpdateQuantity handles PUT /cart/items/:productID
func (h *Handler) UpdateQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		response.BadRequest(c, "product_id inválido")
		return
	}

	var req cartmodel.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Datos inválidos", err.Error())
		return
	}
	variantID, ok := parseOptionalUUID(req.VariantID)
	if !ok {
		response.BadRequest(c, "variant_id inválido")
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), productID, req.Quantity, variantID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// RemoveItem handles DELETE /cart/items/:productID?variant_id=
func (h *Handler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		response.BadRequest(c, "product_id inválido")
		return
	}

	var variantID *uuid.UUID
	if raw := c.Query("variant_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "variant_id inválido")
			return
		}
		variantID = &parsed
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), productID, variantID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(c *gin.Context) {
	cart, err := h.service.ClearCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// ApplyCoupon handles POST /cart/coupon
func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req cartmodel.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Datos inválidos", err.Error())
		return
	}

	cart, err := h.service.ApplyCoupon(c.Request.Context(), middleware.GetSessionID(c), req.Code, req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// RemoveCoupon handles DELETE /cart/coupon
func (h *Handler) RemoveCoupon(c *gin.Context) {
	cart, err := h.service.RemoveCoupon(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// CalculateShipping handles POST /cart/shipping
func (h *Handler) CalculateShipping(c *gin.Context) {
	var req cartmodel.ShippingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Cuerpo de la petición inválido")
			return
		}
		if err := req.Validate(); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Datos inválidos", err.Error())
			return
		}
	}

	cart, err := h.service.CalculateShipping(c.Request.Context(), middleware.GetSessionID(c), req.Location)
	if err != nil {
		response.InternalServerError(c, "Error interno del servidor")
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// writeError maps domain failures onto HTTP statuses. Unknown errors stay
// opaque to the client.
func (h *Handler) writeError(c *gin.Context, err error) {
	var rejected *engine.CouponRejectedError
	if errors.As(err, &rejected) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_REJECTED", rejected.Reason)
		return
	}

	switch {
	case errors.Is(err, catalogmodel.ErrProductNotFound),
		errors.Is(err, catalogmodel.ErrVariantNotFound):
		response.NotFound(c, "Producto no encontrado")
	case errors.Is(err, catalogmodel.ErrProductInactive):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "PRODUCT_INACTIVE", "El producto no está disponible")
	case errors.Is(err, catalogmodel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "Stock insuficiente")
	case errors.Is(err, catalogmodel.ErrVariantMismatch):
		response.BadRequest(c, "La variante no pertenece al producto")
	default:
		response.InternalServerError(c, "Error interno del servidor")
	}
}

func parseOptionalUUID(raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
