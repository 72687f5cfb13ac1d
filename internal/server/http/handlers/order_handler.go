package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UVLabs/gateway-currency/internal/server/http/dto"
)

// OrderHandler manages confirmation and order-view endpoints.
type OrderHandler struct {
	facade ReconcilerFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade ReconcilerFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Confirm handles POST /api/hooks/orders/:id/confirmation.
func (h *OrderHandler) Confirm(c *gin.Context) {
	order, err := h.facade.ConfirmOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, nil))
}

// SettlementLine handles GET /api/hooks/orders/:id/settlement-line.
func (h *OrderHandler) SettlementLine(c *gin.Context) {
	line, err := h.facade.SettlementLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.SettlementLineResponse{Line: line})
}

// AdminGet handles GET /api/admin/orders/:id.
func (h *OrderHandler) AdminGet(c *gin.Context) {
	order, refunds, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, refunds))
}
