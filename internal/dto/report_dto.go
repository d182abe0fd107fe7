package dto

import (
	"github.com/shopspring/decimal"

	"sidrabill/internal/model"
)

// ─── Filters ─────────────────────────────────────────────────────────────────

// DateRange bounds a report query. Empty bounds are unbounded.
type DateRange struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
}

// SearchQuery is bound from the query string of GET /v1/reports/search.
// Sort defaults to ascending when dir is omitted.
type SearchQuery struct {
	DateRange
	Q      string `form:"q"`
	SortBy string `form:"sort_by,default=date" validate:"omitempty,oneof=bill_no date customer_name grand_total"`
	Dir    string `form:"dir,default=asc"      validate:"omitempty,oneof=asc desc"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type TopItem struct {
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
}

type SalesStats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int             `json:"total_orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	TopItems      []TopItem       `json:"top_items"`
}

type SearchResponse struct {
	Data  []model.SavedReceipt `json:"data"`
	Total int                  `json:"total"`
}
