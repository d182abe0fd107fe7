package dto

import "github.com/shopspring/decimal"

type CreateMenuItemRequest struct {
	Name string          `json:"name" validate:"required"`
	Rate decimal.Decimal `json:"rate" validate:"min=0"`
}

type UpdateMenuItemRequest struct {
	Name *string          `json:"name"`
	Rate *decimal.Decimal `json:"rate"`
}
