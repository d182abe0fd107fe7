package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sidrabill/internal/dto"
	"sidrabill/internal/model"
)

// Unbounded date-range defaults. ISO calendar-date strings sort
// lexicographically in chronological order, so plain string comparison works.
const (
	minDate = "0000-00-00"
	maxDate = "9999-12-31"
)

const topItemsLimit = 5

type ReportService interface {
	Stats(ctx context.Context, rng dto.DateRange) (*dto.SalesStats, error)
	Search(ctx context.Context, q dto.SearchQuery) (*dto.SearchResponse, error)
	// ExportCSV serializes the filtered+sorted set; the filename encodes the
	// active date range. The file write itself is the caller's concern.
	ExportCSV(ctx context.Context, q dto.SearchQuery) (filename string, data []byte, err error)
}

type reportService struct {
	history HistoryService
}

func NewReportService(history HistoryService) ReportService {
	return &reportService{history: history}
}

// ── Date-range filter ─────────────────────────────────────────────────────────

func filterByDate(records []model.SavedReceipt, rng dto.DateRange) []model.SavedReceipt {
	from, to := rng.From, rng.To
	if from == "" {
		from = minDate
	}
	if to == "" {
		to = maxDate
	}
	out := make([]model.SavedReceipt, 0, len(records))
	for _, r := range records {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out
}

// ── Aggregation ───────────────────────────────────────────────────────────────

func (s *reportService) Stats(ctx context.Context, rng dto.DateRange) (*dto.SalesStats, error) {
	records := filterByDate(s.history.List(ctx), rng)

	totalRevenue := decimal.Zero
	for _, r := range records {
		totalRevenue = totalRevenue.Add(r.GrandTotal)
	}
	totalOrders := len(records)
	avg := decimal.Zero
	if totalOrders > 0 {
		avg = totalRevenue.Div(decimal.NewFromInt(int64(totalOrders)))
	}

	return &dto.SalesStats{
		TotalRevenue:  totalRevenue,
		TotalOrders:   totalOrders,
		AvgOrderValue: avg,
		TopItems:      topItems(records),
	}, nil
}

// topItems groups all line items by description, summing quantity and revenue,
// and returns the top 5 by summed quantity. The sort is stable so equal counts
// rank in first-encountered order.
func topItems(records []model.SavedReceipt) []dto.TopItem {
	type agg struct {
		qty     int
		revenue decimal.Decimal
	}
	byName := make(map[string]*agg)
	var order []string

	for _, r := range records {
		for _, li := range r.Items {
			a, ok := byName[li.Description]
			if !ok {
				a = &agg{revenue: decimal.Zero}
				byName[li.Description] = a
				order = append(order, li.Description)
			}
			a.qty += li.Qty
			a.revenue = a.revenue.Add(li.Amount())
		}
	}

	items := make([]dto.TopItem, 0, len(order))
	for _, name := range order {
		a := byName[name]
		items = append(items, dto.TopItem{Name: name, Qty: a.qty, Revenue: a.revenue})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Qty > items[j].Qty })
	if len(items) > topItemsLimit {
		items = items[:topItemsLimit]
	}
	return items
}

// ── Search + sort ─────────────────────────────────────────────────────────────

func (s *reportService) Search(ctx context.Context, q dto.SearchQuery) (*dto.SearchResponse, error) {
	records := filterByDate(s.history.List(ctx), q.DateRange)
	records = searchRecords(records, q.Q)
	sortRecords(records, q.SortBy, q.Dir)
	return &dto.SearchResponse{Data: records, Total: len(records)}, nil
}

// searchRecords keeps records where ANY of bill number, customer name or phone
// contains the term, case-insensitively.
func searchRecords(records []model.SavedReceipt, term string) []model.SavedReceipt {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	out := make([]model.SavedReceipt, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.BillNo), term) ||
			strings.Contains(strings.ToLower(r.CustomerName), term) ||
			strings.Contains(strings.ToLower(r.CustomerPhone), term) {
			out = append(out, r)
		}
	}
	return out
}

func sortRecords(records []model.SavedReceipt, sortBy, dir string) {
	if sortBy == "" {
		return
	}
	less := func(a, b model.SavedReceipt) bool {
		switch sortBy {
		case "bill_no":
			return lessBillNo(a.BillNo, b.BillNo)
		case "customer_name":
			return a.CustomerName < b.CustomerName
		case "grand_total":
			return a.GrandTotal.LessThan(b.GrandTotal)
		default: // date
			return a.Date < b.Date
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if dir == "desc" {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// lessBillNo compares bill numbers numerically; an overridden non-numeric
// bill number falls back to string order.
func lessBillNo(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// SortState captures the UI's column-header toggle: selecting a new field
// sorts ascending; re-selecting the current field flips the direction.
type SortState struct {
	Field string
	Dir   string
}

func NextSortState(prev SortState, field string) SortState {
	if prev.Field == field && prev.Dir == "asc" {
		return SortState{Field: field, Dir: "desc"}
	}
	return SortState{Field: field, Dir: "asc"}
}
