package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UVLabs/gateway-currency/internal/render"
	"github.com/UVLabs/gateway-currency/internal/server/http/dto"
)

// RenderHandler manages rendering-time substitution endpoints.
type RenderHandler struct {
	facade ReconcilerFacade
}

// NewRenderHandler constructs RenderHandler.
func NewRenderHandler(facade ReconcilerFacade) *RenderHandler {
	return &RenderHandler{facade: facade}
}

// Total handles POST /api/hooks/render/total.
func (h *RenderHandler) Total(c *gin.Context) {
	var req dto.RenderTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	patched, err := h.facade.RenderedTotal(c.Request.Context(), req.OrderID, req.Rendered)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, dto.RenderTotalResponse{Rendered: patched})
}

// Rows handles POST /api/hooks/render/rows.
func (h *RenderHandler) Rows(c *gin.Context) {
	var req dto.RenderRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	rows := make([]render.TotalRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, render.TotalRow{Kind: render.RowKind(row.Kind), Label: row.Label, Value: row.Value})
	}

	patched, err := h.facade.RenderedRows(c.Request.Context(), req.OrderID, rows)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	out := make([]dto.RenderRow, 0, len(patched))
	for _, row := range patched {
		out = append(out, dto.RenderRow{Kind: string(row.Kind), Label: row.Label, Value: row.Value})
	}
	c.JSON(http.StatusOK, dto.RenderRowsResponse{Rows: out})
}
