package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sidrabill/internal/apierror"
	"sidrabill/internal/dto"
	"sidrabill/internal/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Stats returns revenue, order count, average order value and top items for
// the requested date range.
func (h *ReportHandler) Stats(c *gin.Context) {
	var rng dto.DateRange
	if !bindQueryAndValidate(c, &rng) {
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), rng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Search filters history by date range and free-text term, sorted as requested.
func (h *ReportHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV streams the filtered result set as a CSV download.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	filename, data, err := h.svc.ExportCSV(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
