package dto

// ReceiptView is the render-ready projection of a bill: 1-based row numbers
// and two-decimal currency strings. It carries no business logic and is used
// identically for live preview, PDF rendering and print.
type ReceiptView struct {
	OutletName    string       `json:"outlet_name"`
	OutletTagline string       `json:"outlet_tagline"`
	Date          string       `json:"date"`
	BillNo        string       `json:"bill_no"`
	CustomerName  string       `json:"customer_name"`
	Rows          []ReceiptRow `json:"rows"`
	TaxRate       string       `json:"tax_rate"`
	SubTotal      string       `json:"sub_total"`
	TaxAmount     string       `json:"tax_amount"`
	GrandTotal    string       `json:"grand_total"`
}

type ReceiptRow struct {
	SeqNo       int    `json:"seq_no"`
	Description string `json:"description"`
	Qty         int    `json:"qty"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// WhatsAppShareResponse carries the composed message and the click-to-chat URL.
type WhatsAppShareResponse struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Link    string `json:"link"`
}
