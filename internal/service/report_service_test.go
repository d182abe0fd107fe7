package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidrabill/internal/dto"
	"sidrabill/internal/model"
	"sidrabill/internal/repository"
)

func receipt(billNo, date, customer, phone string, items ...model.LineItem) model.SavedReceipt {
	totals := model.ComputeTotals(items, decimal.NewFromInt(5))
	return model.SavedReceipt{
		ID:            billNo,
		Timestamp:     time.Now(),
		Date:          date,
		BillNo:        billNo,
		CustomerName:  customer,
		CustomerPhone: phone,
		Items:         items,
		TaxRate:       decimal.NewFromInt(5),
		SubTotal:      totals.SubTotal,
		TaxAmount:     totals.TaxAmount,
		GrandTotal:    totals.GrandTotal,
	}
}

func item(desc string, qty int, rate int64) model.LineItem {
	return model.LineItem{ID: desc, Description: desc, Qty: qty, Rate: decimal.NewFromInt(rate)}
}

func newReportService(t *testing.T, records ...model.SavedReceipt) ReportService {
	t.Helper()
	repo := repository.NewMemoryHistoryRepository()
	require.NoError(t, repo.Save(context.Background(), records))
	history, err := NewHistoryService(context.Background(), repo, nil)
	require.NoError(t, err)
	return NewReportService(history)
}

// ── Date filter ───────────────────────────────────────────────────────────────

func TestFilterByDate_InclusiveBounds(t *testing.T) {
	records := []model.SavedReceipt{
		receipt("1001", "2026-02-28", "", ""),
		receipt("1002", "2026-03-01", "", ""),
		receipt("1003", "2026-03-15", "", ""),
		receipt("1004", "2026-03-31", "", ""),
		receipt("1005", "2026-04-01", "", ""),
	}
	got := filterByDate(records, dto.DateRange{From: "2026-03-01", To: "2026-03-31"})
	require.Len(t, got, 3)
	assert.Equal(t, "1002", got[0].BillNo)
	assert.Equal(t, "1004", got[2].BillNo)
}

func TestFilterByDate_OpenEnds(t *testing.T) {
	records := []model.SavedReceipt{
		receipt("1001", "2026-02-28", "", ""),
		receipt("1002", "2026-03-01", "", ""),
	}
	assert.Len(t, filterByDate(records, dto.DateRange{}), 2)
	assert.Len(t, filterByDate(records, dto.DateRange{From: "2026-03-01"}), 1)
	assert.Len(t, filterByDate(records, dto.DateRange{To: "2026-02-28"}), 1)
}

// ── Stats ─────────────────────────────────────────────────────────────────────

func TestStats(t *testing.T) {
	svc := newReportService(t,
		receipt("1001", "2026-03-01", "Asif", "", item("Chicken Burger", 2, 120)),
		receipt("1002", "2026-03-02", "Rahul", "", item("Cold Drink", 1, 40)),
	)

	stats, err := svc.Stats(context.Background(), dto.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	// (240 + 40) × 1.05 = 294
	assert.Equal(t, "294", stats.TotalRevenue.String())
	assert.Equal(t, "147", stats.AvgOrderValue.String())
}

func TestStats_EmptyRange(t *testing.T) {
	svc := newReportService(t)
	stats, err := svc.Stats(context.Background(), dto.DateRange{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.AvgOrderValue.IsZero())
	assert.Empty(t, stats.TopItems)
}

func TestTopItems_TieBreaksByFirstSeen(t *testing.T) {
	records := []model.SavedReceipt{
		receipt("1001", "2026-03-01", "", "", item("Burger", 2, 120)),
		receipt("1002", "2026-03-02", "", "", item("Fries", 2, 60)),
	}
	top := topItems(records)
	require.Len(t, top, 2)
	assert.Equal(t, "Burger", top[0].Name)
	assert.Equal(t, "Fries", top[1].Name)
}

func TestTopItems_SumsAcrossBillsAndCaps(t *testing.T) {
	records := []model.SavedReceipt{
		receipt("1001", "2026-03-01", "", "",
			item("A", 1, 10), item("B", 2, 10), item("C", 3, 10)),
		receipt("1002", "2026-03-02", "", "",
			item("A", 9, 10), item("D", 4, 10), item("E", 5, 10), item("F", 6, 10)),
	}
	top := topItems(records)
	require.Len(t, top, 5)
	assert.Equal(t, "A", top[0].Name)
	assert.Equal(t, 10, top[0].Qty)
	assert.Equal(t, "100", top[0].Revenue.String())
}

// ── Search + sort ─────────────────────────────────────────────────────────────

func TestSearch_MatchesAnyField(t *testing.T) {
	svc := newReportService(t,
		receipt("1001", "2026-03-01", "Asif Khan", "9876543210"),
		receipt("1002", "2026-03-02", "Rahul", "9123456789"),
	)

	for _, term := range []string{"1001", "asif", "KHAN", "98765"} {
		resp, err := svc.Search(context.Background(), dto.SearchQuery{Q: term})
		require.NoError(t, err)
		require.Len(t, resp.Data, 1, "term %q", term)
		assert.Equal(t, "1001", resp.Data[0].BillNo)
	}

	resp, err := svc.Search(context.Background(), dto.SearchQuery{Q: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestSortRecords(t *testing.T) {
	a := receipt("1002", "2026-03-01", "Zoya", "", item("X", 1, 50))
	b := receipt("1001", "2026-03-03", "Asif", "", item("X", 1, 150))
	c := receipt("1003", "2026-03-02", "Meera", "", item("X", 1, 100))

	records := []model.SavedReceipt{a, b, c}
	sortRecords(records, "bill_no", "asc")
	assert.Equal(t, []string{"1001", "1002", "1003"}, billNos(records))

	sortRecords(records, "date", "desc")
	assert.Equal(t, []string{"1001", "1003", "1002"}, billNos(records))

	sortRecords(records, "grand_total", "asc")
	assert.Equal(t, []string{"1002", "1003", "1001"}, billNos(records))

	sortRecords(records, "customer_name", "asc")
	assert.Equal(t, []string{"1001", "1003", "1002"}, billNos(records))
}

func billNos(records []model.SavedReceipt) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.BillNo
	}
	return out
}

func TestSortRecords_BillNoIsNumeric(t *testing.T) {
	records := []model.SavedReceipt{
		receipt("1001", "2026-03-01", "", ""),
		receipt("999", "2026-03-01", "", ""),
	}
	sortRecords(records, "bill_no", "asc")
	assert.Equal(t, []string{"999", "1001"}, billNos(records))
}

func TestNextSortState(t *testing.T) {
	s := NextSortState(SortState{}, "date")
	assert.Equal(t, SortState{Field: "date", Dir: "asc"}, s)

	s = NextSortState(s, "date")
	assert.Equal(t, SortState{Field: "date", Dir: "desc"}, s)

	// Toggling a third time goes back to ascending.
	s = NextSortState(s, "date")
	assert.Equal(t, SortState{Field: "date", Dir: "asc"}, s)

	// Switching fields always starts ascending.
	s = NextSortState(SortState{Field: "date", Dir: "desc"}, "bill_no")
	assert.Equal(t, SortState{Field: "bill_no", Dir: "asc"}, s)
}

// ── CSV export ────────────────────────────────────────────────────────────────

func TestExportCSV(t *testing.T) {
	svc := newReportService(t,
		receipt("1001", "2026-03-01", "Asif", "9876543210",
			item("Chicken Burger", 2, 120), item("Cold Drink", 1, 40)),
		receipt("1002", "2026-03-02", "", ""), // walk-in, no contact
	)

	filename, data, err := svc.ExportCSV(context.Background(), dto.SearchQuery{
		DateRange: dto.DateRange{From: "2026-03-01", To: "2026-03-31"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sales_2026-03-01_2026-03-31.csv", filename)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records
	for _, row := range rows {
		assert.Len(t, row, 8)
	}

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"1001", "01/03/2026", "Asif", "9876543210", "2", "280.00", "14.00", "294.00"}, rows[1])
	// Missing customer data falls back to the standard placeholders.
	assert.Equal(t, "Cash Sale", rows[2][2])
	assert.Equal(t, "N/A", rows[2][3])
}

func TestExportCSV_DefaultFilename(t *testing.T) {
	svc := newReportService(t)
	filename, _, err := svc.ExportCSV(context.Background(), dto.SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, "sales_all_all.csv", filename)
}
