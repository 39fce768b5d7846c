package handlers

import (
	"errors"
	"net/http"

	"github.com/JDR69/DeporteDubss/services"
)

const maxImportSize = 10 << 20 // 10MB

type IngestionHandler struct {
	ingestionService services.IngestionService
}

func NewIngestionHandler(ingestionService services.IngestionService) *IngestionHandler {
	return &IngestionHandler{ingestionService: ingestionService}
}

// ImportResults accepts a multipart CSV upload of externally recorded results.
func (h *IngestionHandler) ImportResults(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form"))
		return
	}
	file, _, err := r.FormFile("results")
	if err != nil {
		badRequestResponse(w, r, errors.New("results file is required"))
		return
	}
	defer file.Close()

	report, err := h.ingestionService.ImportResults(r.Context(), championshipID, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
