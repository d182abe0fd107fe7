package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sidrabill/internal/dto"
	"sidrabill/internal/model"
)

// firstBillNo is the base of the rolling bill-number sequence.
const firstBillNo = 1001

// defaultTaxRate is the tax percentage a fresh draft starts with.
var defaultTaxRate = decimal.NewFromInt(5)

// NextBillNo derives the suggested bill number from the current history
// length. It is advisory: numbers can repeat after deletions and the operator
// may override it on the draft.
func NextBillNo(historyLength int) string {
	return strconv.Itoa(firstBillNo + historyLength)
}

type DraftService interface {
	Get() dto.DraftResponse
	AddLine() dto.DraftResponse
	RemoveLine(id string) dto.DraftResponse
	UpdateLine(id string, cmd dto.LineUpdate) (dto.DraftResponse, error)
	SetHeader(req dto.DraftHeaderRequest) dto.DraftResponse
	// Reset replaces the draft with a fresh one numbered from history length.
	Reset(ctx context.Context) (dto.DraftResponse, error)
	// BeginEdit loads a saved receipt into the draft. While an edit is in
	// progress the bill-number counter is left untouched.
	BeginEdit(rec model.SavedReceipt) dto.DraftResponse
	EditingID() string
	// Snapshot returns the draft for finalization and clears edit state after
	// a successful finalize (called by the handler on success).
	Snapshot() (model.BillDraft, string)
	ClearEdit()
}

type draftService struct {
	mu        sync.Mutex
	draft     model.BillDraft
	editingID string
	menu      MenuService
	history   HistoryService
}

func NewDraftService(menu MenuService, history HistoryService) DraftService {
	s := &draftService{menu: menu, history: history}
	s.draft = freshDraft(NextBillNo(0))
	return s
}

func freshDraft(billNo string) model.BillDraft {
	return model.BillDraft{
		Date:    time.Now().Format("2006-01-02"),
		BillNo:  billNo,
		Items:   []model.LineItem{placeholderLine()},
		TaxRate: defaultTaxRate,
	}
}

func placeholderLine() model.LineItem {
	return model.LineItem{ID: uuid.NewString(), Qty: 1, Rate: decimal.Zero}
}

func (s *draftService) response() dto.DraftResponse {
	d := s.draft
	items := make([]model.LineItem, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return dto.DraftResponse{
		Draft:     d,
		Totals:    model.ComputeTotals(d.Items, d.TaxRate),
		EditingID: s.editingID,
	}
}

func (s *draftService) Get() dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.response()
}

func (s *draftService) AddLine() dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Items = append(s.draft.Items, placeholderLine())
	return s.response()
}

// RemoveLine deletes the matching row unless it is the only one left — a
// draft never has zero rows.
func (s *draftService) RemoveLine(id string) dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draft.Items) <= 1 {
		return s.response()
	}
	for i := range s.draft.Items {
		if s.draft.Items[i].ID == id {
			s.draft.Items = append(s.draft.Items[:i], s.draft.Items[i+1:]...)
			break
		}
	}
	return s.response()
}

// UpdateLine applies a single-field update command. Setting a description that
// matches a menu item overwrites the row's rate with the catalog rate — menu
// selection always wins over a manually typed rate. After the update is
// applied, a trailing placeholder row is appended when the last row gained a
// non-empty description, so the operator always has a fresh row ready.
func (s *draftService) UpdateLine(id string, cmd dto.LineUpdate) (dto.DraftResponse, error) {
	if err := cmd.Validate(); err != nil {
		return dto.DraftResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.draft.Items {
		if s.draft.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return dto.DraftResponse{}, errors.New("line item not found")
	}

	switch {
	case cmd.Description != nil:
		s.draft.Items[idx].Description = *cmd.Description
		if rate, ok := s.menu.LookupRate(*cmd.Description); ok {
			s.draft.Items[idx].Rate = rate
		}
	case cmd.Qty != nil:
		s.draft.Items[idx].Qty = *cmd.Qty
	case cmd.Rate != nil:
		s.draft.Items[idx].Rate = *cmd.Rate
	}

	// Post-update auto-extend, evaluated on the updated state.
	last := len(s.draft.Items) - 1
	if idx == last && !s.draft.Items[last].IsPlaceholder() {
		s.draft.Items = append(s.draft.Items, placeholderLine())
	}
	return s.response(), nil
}

func (s *draftService) SetHeader(req dto.DraftHeaderRequest) dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Date != nil {
		s.draft.Date = *req.Date
	}
	if req.BillNo != nil {
		s.draft.BillNo = *req.BillNo
	}
	if req.CustomerName != nil {
		s.draft.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		s.draft.CustomerPhone = *req.CustomerPhone
	}
	if req.TaxRate != nil {
		s.draft.TaxRate = *req.TaxRate
	}
	return s.response()
}

func (s *draftService) Reset(ctx context.Context) (dto.DraftResponse, error) {
	count, err := s.history.Count(ctx)
	if err != nil {
		return dto.DraftResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
	s.draft = freshDraft(NextBillNo(count))
	return s.response(), nil
}

func (s *draftService) BeginEdit(rec model.SavedReceipt) dto.DraftResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = rec.ID
	s.draft = rec.Draft()
	// An edited record has no placeholder rows; restore the trailing one.
	s.draft.Items = append(s.draft.Items, placeholderLine())
	return s.response()
}

func (s *draftService) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

func (s *draftService) Snapshot() (model.BillDraft, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	items := make([]model.LineItem, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return d, s.editingID
}

func (s *draftService) ClearEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
}
