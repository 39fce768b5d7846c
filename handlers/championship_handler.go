package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/repositories"
	"github.com/JDR69/DeporteDubss/services"
)

type ChampionshipHandler struct {
	championshipService services.ChampionshipService
}

func NewChampionshipHandler(championshipService services.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{championshipService: championshipService}
}

func (h *ChampionshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListChampionshipsFilter{}
	query := r.URL.Query()

	if organizer := query.Get("organizer_id"); organizer != "" {
		if id, err := strconv.Atoi(organizer); err == nil && id > 0 {
			filter.OrganizerID = &id
		}
	}
	if sport := query.Get("sport_id"); sport != "" {
		if id, err := strconv.Atoi(sport); err == nil && id > 0 {
			filter.SportID = &id
		}
	}
	if status := query.Get("status"); status != "" {
		value := models.ChampionshipStatus(status)
		filter.Status = &value
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

	championships, err := h.championshipService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"championships": championships}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		Status models.ChampionshipStatus `json:"status"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChampionshipHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form"))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("logo file is required"))
		return
	}
	defer file.Close()

	championship, err := h.championshipService.UploadLogo(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) EnrollTeam(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		TeamID int `json:"team_id"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.EnrollTeam(r.Context(), championshipID, body.TeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ChampionshipHandler) WithdrawTeam(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.WithdrawTeam(r.Context(), championshipID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChampionshipHandler) ListEnrolledTeams(w http.ResponseWriter, r *http.Request) {
	championshipID, err := urlParamInt(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.championshipService.ListEnrolledTeams(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
