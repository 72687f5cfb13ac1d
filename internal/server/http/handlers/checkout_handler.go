package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UVLabs/gateway-currency/internal/currency"
	"github.com/UVLabs/gateway-currency/internal/server/http/dto"
)

// CheckoutHandler manages checkout-time endpoints.
type CheckoutHandler struct {
	facade ReconcilerFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade ReconcilerFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Preview handles POST /api/checkout/preview.
func (h *CheckoutHandler) Preview(c *gin.Context) {
	var req dto.CheckoutPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	converted, err := h.facade.PreviewTotal(amount)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutPreviewResponse{
		DisplayAmount:      currency.Format(amount),
		DisplayCurrency:    h.facade.DisplayCurrency(),
		SettlementAmount:   currency.Format(converted),
		SettlementCurrency: h.facade.SettlementCurrency(),
	})
}

// PreviewPlain handles GET /api/checkout/preview. Background cart refreshes
// read the reply as-is, so the body is the bare formatted amount and any
// failure collapses to a generic bad-request.
func (h *CheckoutHandler) PreviewPlain(c *gin.Context) {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid amount")
		return
	}

	converted, err := h.facade.PreviewTotal(amount)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid amount")
		return
	}

	c.String(http.StatusOK, currency.Format(converted))
}

// Finalize handles POST /api/hooks/orders.
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	total, err := parseAmount(req.Total)
	if err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	order, created, err := h.facade.FinalizeOrder(c.Request.Context(), req.OrderID, total)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, toOrderResponse(order, nil))
}

// PersistMeta handles POST /api/hooks/orders/:id/meta.
func (h *CheckoutHandler) PersistMeta(c *gin.Context) {
	order, err := h.facade.PersistOrderMeta(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, nil))
}
