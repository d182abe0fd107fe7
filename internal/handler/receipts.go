package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sidrabill/internal/apierror"
	"sidrabill/internal/dto"
	"sidrabill/internal/infra"
	"sidrabill/internal/service"
)

// ReceiptHandler covers the finalize flow, history access, edit-in-place,
// receipt rendering and sharing.
type ReceiptHandler struct {
	draft   service.DraftService
	history service.HistoryService
	outlet  service.Outlet
	pdfOpts infra.ReceiptPDFOptions
}

func NewReceiptHandler(draft service.DraftService, history service.HistoryService, outlet service.Outlet, pdfOpts infra.ReceiptPDFOptions) *ReceiptHandler {
	return &ReceiptHandler{draft: draft, history: history, outlet: outlet, pdfOpts: pdfOpts}
}

// Finalize freezes the current draft into history and starts a fresh draft.
// When an edit is in progress the edited record is replaced in place.
func (h *ReceiptHandler) Finalize(c *gin.Context) {
	// The body is optional: an empty POST finalizes without email delivery.
	var req dto.FinalizeRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}

	snapshot, editingID := h.draft.Snapshot()
	rec, err := h.history.Finalize(c.Request.Context(), snapshot, editingID, req.CustomerEmail)
	if err != nil {
		if errors.Is(err, service.ErrNoValidItems) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	if _, err := h.draft.Reset(c.Request.Context()); err != nil {
		// The bill is saved; a failed counter refresh only affects the next draft.
		log.Warn().Err(err).Msg("draft reset after finalize failed")
	}
	c.JSON(http.StatusCreated, rec)
}

// List returns the full history, newest first.
func (h *ReceiptHandler) List(c *gin.Context) {
	records := h.history.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": records, "total": len(records)})
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	rec, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Edit loads a saved receipt back into the draft for in-place correction.
func (h *ReceiptHandler) Edit(c *gin.Context) {
	rec, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.draft.BeginEdit(*rec))
}

func (h *ReceiptHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.history.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrReceiptNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	// Deleting the record under edit would strand the draft's edit pointer.
	if h.draft.EditingID() == id {
		h.draft.ClearEdit()
	}
	c.Status(http.StatusNoContent)
}

// Clear wipes the whole history.
func (h *ReceiptHandler) Clear(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	h.draft.ClearEdit()
	c.Status(http.StatusNoContent)
}

// Preview renders the current draft as a receipt without saving anything.
func (h *ReceiptHandler) Preview(c *gin.Context) {
	snapshot, _ := h.draft.Snapshot()
	c.JSON(http.StatusOK, service.FormatReceipt(h.outlet, snapshot))
}

// View renders a saved receipt through the same projection as the live preview.
func (h *ReceiptHandler) View(c *gin.Context) {
	rec, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, service.FormatSavedReceipt(h.outlet, *rec))
}

// DownloadPDF generates the thermal-format PDF on demand and streams it back.
func (h *ReceiptHandler) DownloadPDF(c *gin.Context) {
	rec, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	path, err := infra.GenerateReceiptPDF(rec, h.pdfOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to generate PDF: "+err.Error()))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bill_`+rec.BillNo+`.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

// WhatsApp returns the share message and wa.me link for a saved receipt.
func (h *ReceiptHandler) WhatsApp(c *gin.Context) {
	rec, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	resp, err := service.WhatsAppShare(h.outlet, *rec)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
