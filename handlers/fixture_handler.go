package handlers

import (
	"net/http"
	"time"

	"github.com/JDR69/DeporteDubss/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

func (h *FixtureHandler) Generate(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matchDays, err := h.fixtureService.GenerateFixture(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match_days": matchDays}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FixtureHandler) Get(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matchDays, err := h.fixtureService.GetFixture(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match_days": matchDays}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FixtureHandler) RescheduleMatchDay(w http.ResponseWriter, r *http.Request) {
	matchDayID, err := urlParamInt(r, "matchDayID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		Date *time.Time `json:"date"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matchDay, err := h.fixtureService.RescheduleMatchDay(r.Context(), matchDayID, body.Date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match_day": matchDay}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FixtureHandler) AssignMatchVenue(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		VenueID int `json:"venue_id"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.fixtureService.AssignMatchVenue(r.Context(), matchID, body.VenueID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
