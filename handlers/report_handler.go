package handlers

import (
	"net/http"
	"strconv"

	"github.com/JDR69/DeporteDubss/repositories"
	"github.com/JDR69/DeporteDubss/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Summary(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReportHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListAuditFilter{Limit: 100}
	query := r.URL.Query()

	if user := query.Get("user_id"); user != "" {
		if id, err := strconv.Atoi(user); err == nil && id > 0 {
			filter.UserID = &id
		}
	}
	if action := query.Get("action"); action != "" {
		filter.Action = &action
	}
	if limit := query.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if offset := query.Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	entries, err := h.reportService.AuditLog(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"audit": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
