package dto

// RenderTotalRequest asks for the display total to be patched into a
// pre-rendered total string.
type RenderTotalRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Rendered string `json:"rendered" binding:"required"`
}

// RenderTotalResponse returns the patched string.
type RenderTotalResponse struct {
	Rendered string `json:"rendered"`
}

// RenderRow is one pre-rendered row of the itemized totals breakdown.
type RenderRow struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// RenderRowsRequest asks for the breakdown rows to be patched.
type RenderRowsRequest struct {
	OrderID string      `json:"order_id" binding:"required"`
	Rows    []RenderRow `json:"rows" binding:"required"`
}

// RenderRowsResponse returns the patched rows.
type RenderRowsResponse struct {
	Rows []RenderRow `json:"rows"`
}
