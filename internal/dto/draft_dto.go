package dto

import (
	"errors"

	"github.com/shopspring/decimal"

	"sidrabill/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineUpdate is a closed update command: exactly one field must be set.
// Using one-of pointers instead of a dynamic field/value pair keeps invalid
// combinations unrepresentable.
type LineUpdate struct {
	Description *string          `json:"description"`
	Qty         *int             `json:"qty"  validate:"omitempty,min=0"`
	Rate        *decimal.Decimal `json:"rate"`
}

// Validate enforces the one-of rule.
func (u LineUpdate) Validate() error {
	set := 0
	if u.Description != nil {
		set++
	}
	if u.Qty != nil {
		set++
	}
	if u.Rate != nil {
		set++
	}
	if set != 1 {
		return errors.New("exactly one of description, qty, rate must be set")
	}
	return nil
}

// DraftHeaderRequest updates the bill metadata (PUT /v1/draft).
type DraftHeaderRequest struct {
	Date          *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	BillNo        *string          `json:"bill_no"`
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
}

// FinalizeRequest converts the current draft into a history record.
// CustomerEmail, when present, triggers async PDF delivery by email.
type FinalizeRequest struct {
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// DraftResponse is the draft plus its live totals.
type DraftResponse struct {
	Draft  model.BillDraft `json:"draft"`
	Totals model.Totals    `json:"totals"`
	// EditingID is non-empty while an existing receipt is being edited.
	EditingID string `json:"editing_id,omitempty"`
}
