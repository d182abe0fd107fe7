package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sidrabill/internal/apierror"
	"sidrabill/internal/dto"
	"sidrabill/internal/service"
)

// DraftHandler exposes the working bill draft. All endpoints operate on the
// single shared draft: this is a one-terminal counter application.
type DraftHandler struct {
	svc service.DraftService
}

func NewDraftHandler(svc service.DraftService) *DraftHandler {
	return &DraftHandler{svc: svc}
}

// Get returns the current draft with live totals.
func (h *DraftHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Get())
}

// SetHeader partially updates date, bill number, customer name/phone or tax rate.
func (h *DraftHandler) SetHeader(c *gin.Context) {
	var req dto.DraftHeaderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.SetHeader(req))
}

// AddLine appends an empty row to the draft.
func (h *DraftHandler) AddLine(c *gin.Context) {
	c.JSON(http.StatusCreated, h.svc.AddLine())
}

// UpdateLine applies a single-field edit to one row.
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	var req dto.LineUpdate
	if !bindAndValidate(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.UpdateLine(c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveLine deletes a row. Removing the last remaining row is a no-op.
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.RemoveLine(c.Param("id")))
}

// Reset discards the draft and starts a fresh bill with the next number.
func (h *DraftHandler) Reset(c *gin.Context) {
	resp, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
