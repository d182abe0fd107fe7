package model

import "github.com/shopspring/decimal"

// MenuItem is one sellable item in the catalog. Name is the lookup key used to
// auto-fill a bill line's rate; names are not required to be unique — lookups
// resolve to the first match in catalog order.
type MenuItem struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}
