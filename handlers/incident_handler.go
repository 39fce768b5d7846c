package handlers

import (
	"net/http"

	"github.com/JDR69/DeporteDubss/services"
)

type IncidentHandler struct {
	incidentService services.IncidentService
}

func NewIncidentHandler(incidentService services.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

func (h *IncidentHandler) Report(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ReportIncidentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.MatchID = matchID

	incident, err := h.incidentService.Report(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"incident": incident}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *IncidentHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	incidents, err := h.incidentService.ListByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"incidents": incidents}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *IncidentHandler) ListByChampionship(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	incidents, err := h.incidentService.ListByChampionship(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"incidents": incidents}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *IncidentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "incidentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.incidentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
