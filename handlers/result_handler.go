package handlers

import (
	"net/http"

	"github.com/JDR69/DeporteDubss/middleware"
	"github.com/JDR69/DeporteDubss/services"
)

type ResultHandler struct {
	standingsService services.StandingsService
}

func NewResultHandler(standingsService services.StandingsService) *ResultHandler {
	return &ResultHandler{standingsService: standingsService}
}

func (h *ResultHandler) Record(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		HomeGoals int `json:"home_goals"`
		AwayGoals int `json:"away_goals"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	match, err := h.standingsService.RecordResult(r.Context(), services.RecordResultInput{
		MatchID:   matchID,
		HomeGoals: body.HomeGoals,
		AwayGoals: body.AwayGoals,
		ActorID:   actorID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) Correct(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		HomeGoals int `json:"home_goals"`
		AwayGoals int `json:"away_goals"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	match, err := h.standingsService.CorrectResult(r.Context(), services.RecordResultInput{
		MatchID:   matchID,
		HomeGoals: body.HomeGoals,
		AwayGoals: body.AwayGoals,
		ActorID:   actorID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) Standings(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.RecomputeStandings(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
