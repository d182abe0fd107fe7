package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"sidrabill/internal/dto"
	"sidrabill/internal/model"
)

var ErrNoPhoneNumber = errors.New("customer phone number is required for WhatsApp sharing")

// NormalizePhone strips all non-digit characters; when exactly 10 digits
// remain the Indian country code 91 is prepended, otherwise the digits are
// used as-is.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return "91" + digits
	}
	return digits
}

// WhatsAppShare composes the bill summary message and a wa.me click-to-chat
// link for a finalized receipt. Fails when no phone number is on record.
func WhatsAppShare(outlet Outlet, r model.SavedReceipt) (*dto.WhatsAppShareResponse, error) {
	if strings.TrimSpace(r.CustomerPhone) == "" {
		return nil, ErrNoPhoneNumber
	}
	phone := NormalizePhone(r.CustomerPhone)

	customer := r.CustomerName
	if customer == "" {
		customer = "Customer"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", outlet.Name)
	fmt.Fprintf(&b, "Bill No: %s\n", r.BillNo)
	fmt.Fprintf(&b, "Date: %s\n", formatDate(r.Date))
	fmt.Fprintf(&b, "Customer: %s\n\n", customer)
	for _, li := range r.Items {
		fmt.Fprintf(&b, "%s x%d = %s\n", li.Description, li.Qty, li.Amount().StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Grand Total: %s*\n", r.GrandTotal.StringFixed(2))
	fmt.Fprintf(&b, "Thank you for your business!")
	msg := b.String()

	link := fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(msg))
	return &dto.WhatsAppShareResponse{Phone: phone, Message: msg, Link: link}, nil
}
