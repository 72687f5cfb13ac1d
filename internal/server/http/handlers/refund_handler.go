package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UVLabs/gateway-currency/internal/server/http/dto"
)

// RefundHandler manages the gateway refund hook.
type RefundHandler struct {
	facade ReconcilerFacade
}

// NewRefundHandler constructs RefundHandler.
func NewRefundHandler(facade ReconcilerFacade) *RefundHandler {
	return &RefundHandler{facade: facade}
}

// Apply handles POST /api/hooks/orders/:id/refunds.
func (h *RefundHandler) Apply(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	refund, err := h.facade.ApplyRefund(c.Request.Context(), c.Param("id"), req.RefundID, amount, req.Partial)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, toRefundResponse(*refund))
}
