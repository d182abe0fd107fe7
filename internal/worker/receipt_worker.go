package worker

// receipt_worker.go
// Processes receipt-delivery jobs from QueueReceipts: renders the finalized
// bill to a PDF and hands delivery off to the email queue. A PDF failure never
// touches billing state — the receipt stays available for direct download.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"sidrabill/internal/infra"
	"sidrabill/internal/model"
	"sidrabill/internal/repository"
)

type ReceiptWorker struct {
	historyRepo repository.HistoryRepository
	dispatcher  *Dispatcher
	pdfOpts     infra.ReceiptPDFOptions
}

func NewReceiptWorker(historyRepo repository.HistoryRepository, dispatcher *Dispatcher, pdfOpts infra.ReceiptPDFOptions) *ReceiptWorker {
	return &ReceiptWorker{
		historyRepo: historyRepo,
		dispatcher:  dispatcher,
		pdfOpts:     pdfOpts,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Look the receipt up in the persisted history snapshot
//  3. Render the PDF
//  4. Enqueue the email job carrying the attachment path
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	rec, err := w.findReceipt(ctx, payload.ReceiptID)
	if err != nil {
		log.Error().Err(err).Str("receipt_id", payload.ReceiptID).Msg("receipt_worker: receipt not found")
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(rec, w.pdfOpts)
	if err != nil {
		log.Warn().Err(err).Str("receipt_id", payload.ReceiptID).Msg("receipt_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("receipt_id", payload.ReceiptID).Msg("receipt_worker: PDF generated")

	if payload.CustomerEmail == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.CustomerEmail,
		Subject: fmt.Sprintf("%s — Bill #%s", w.pdfOpts.OutletName, rec.BillNo),
		Body:    fmt.Sprintf("Please find your bill attached.\nGrand Total: %s", rec.GrandTotal.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.CustomerEmail).Msg("receipt_worker: failed to enqueue email")
	}
}

func (w *ReceiptWorker) findReceipt(ctx context.Context, id string) (*model.SavedReceipt, error) {
	records, err := w.historyRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("receipt %s not in history", id)
}
