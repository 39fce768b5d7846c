package handlers

import (
	"errors"
	"net/http"

	"github.com/JDR69/DeporteDubss/services"
)

const maxLogoSize = 5 << 20 // 5MB

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"

	teams, err := h.teamService.List(r.Context(), onlyActive)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "teamID")
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

	team, err := h.teamService.UploadLogo(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		UserID int     `json:"user_id"`
		Note   *string `json:"note"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.AddPlayer(r.Context(), teamID, body.UserID, body.Note); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *TeamHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.RemovePlayer(r.Context(), userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.teamService.ListPlayers(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
