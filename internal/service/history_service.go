package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sidrabill/internal/model"
	"sidrabill/internal/repository"
	"sidrabill/internal/worker"
)

var (
	ErrNoValidItems    = errors.New("cannot finalize a bill with no items")
	ErrReceiptNotFound = errors.New("receipt not found")
)

type HistoryService interface {
	// Finalize freezes the draft into a SavedReceipt. A non-empty editingID
	// replaces that record in place (keeping its original timestamp);
	// otherwise a new record is prepended with a fresh id and timestamp.
	Finalize(ctx context.Context, draft model.BillDraft, editingID string, customerEmail *string) (*model.SavedReceipt, error)
	List(ctx context.Context) []model.SavedReceipt
	Get(ctx context.Context, id string) (*model.SavedReceipt, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

type historyService struct {
	mu         sync.Mutex
	repo       repository.HistoryRepository
	records    []model.SavedReceipt
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

// NewHistoryService loads the history snapshot once; every mutation rewrites
// it in full. dispatcher may be nil (no async receipt delivery).
func NewHistoryService(ctx context.Context, repo repository.HistoryRepository, dispatcher *worker.Dispatcher) (HistoryService, error) {
	records, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &historyService{
		repo:       repo,
		records:    records,
		dispatcher: dispatcher,
		now:        time.Now,
	}, nil
}

func (s *historyService) Finalize(ctx context.Context, draft model.BillDraft, editingID string, customerEmail *string) (*model.SavedReceipt, error) {
	valid := draft.ValidItems()
	if len(valid) == 0 {
		return nil, ErrNoValidItems
	}
	totals := model.ComputeTotals(valid, draft.TaxRate)

	rec := model.SavedReceipt{
		Date:          draft.Date,
		BillNo:        draft.BillNo,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		Items:         valid,
		TaxRate:       draft.TaxRate,
		SubTotal:      totals.SubTotal,
		TaxAmount:     totals.TaxAmount,
		GrandTotal:    totals.GrandTotal,
	}

	s.mu.Lock()
	if editingID != "" {
		idx := s.indexOf(editingID)
		if idx < 0 {
			s.mu.Unlock()
			return nil, errors.New("receipt being edited no longer exists")
		}
		// Timestamp carries forward from the original finalization.
		rec.ID = editingID
		rec.Timestamp = s.records[idx].Timestamp
		s.records[idx] = rec
	} else {
		rec.ID = uuid.NewString()
		rec.Timestamp = s.now()
		s.records = append([]model.SavedReceipt{rec}, s.records...)
	}
	snapshot := s.copyRecords()
	s.mu.Unlock()

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && customerEmail != nil && *customerEmail != "" {
		payload := worker.ReceiptJobPayload{ReceiptID: rec.ID, CustomerEmail: *customerEmail}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			// Best effort — the bill is already saved.
			log.Warn().Err(err).Str("receipt_id", rec.ID).Msg("failed to enqueue receipt delivery")
		}
	}
	return &rec, nil
}

func (s *historyService) List(_ context.Context) []model.SavedReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyRecords()
}

func (s *historyService) Get(_ context.Context, id string) (*model.SavedReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrReceiptNotFound
	}
	rec := s.records[idx]
	return &rec, nil
}

func (s *historyService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrReceiptNotFound
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	snapshot := s.copyRecords()
	s.mu.Unlock()
	return s.repo.Save(ctx, snapshot)
}

func (s *historyService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
	return s.repo.Save(ctx, nil)
}

func (s *historyService) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

func (s *historyService) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *historyService) copyRecords() []model.SavedReceipt {
	out := make([]model.SavedReceipt, len(s.records))
	copy(out, s.records)
	return out
}
