package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"sidrabill/internal/dto"
)

// csvHeader defines the 8 exported columns.
var csvHeader = []string{
	"Bill No", "Date", "Customer", "Phone", "Items", "Subtotal", "Tax", "Grand Total",
}

func (s *reportService) ExportCSV(ctx context.Context, q dto.SearchQuery) (string, []byte, error) {
	resp, err := s.Search(ctx, q)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", nil, err
	}
	for _, r := range resp.Data {
		customer := r.CustomerName
		if customer == "" {
			customer = "Cash Sale"
		}
		phone := r.CustomerPhone
		if phone == "" {
			phone = "N/A"
		}
		row := []string{
			r.BillNo,
			formatDate(r.Date),
			customer,
			phone,
			strconv.Itoa(len(r.Items)),
			r.SubTotal.StringFixed(2),
			r.TaxAmount.StringFixed(2),
			r.GrandTotal.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	return exportFilename(q.DateRange), buf.Bytes(), nil
}

// formatDate renders an ISO date as DD/MM/YYYY; malformed input passes through.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// exportFilename encodes the active date range, e.g. sales_2024-01-01_2024-01-31.csv.
func exportFilename(rng dto.DateRange) string {
	from, to := rng.From, rng.To
	if from == "" {
		from = "all"
	}
	if to == "" {
		to = "all"
	}
	return fmt.Sprintf("sales_%s_%s.csv", from, to)
}
