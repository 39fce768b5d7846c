package handlers

import (
	"net/http"

	"github.com/JDR69/DeporteDubss/services"
)

type SportHandler struct {
	sportService services.SportService
}

func NewSportHandler(sportService services.SportService) *SportHandler {
	return &SportHandler{sportService: sportService}
}

func (h *SportHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.sportService.CreateCategory(r.Context(), body.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.sportService.ListCategories(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"categories": categories}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSportInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.CreateSport(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"sport": sport}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.GetSportByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sport": sport}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) List(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.ListSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sports": sports}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateSportInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.UpdateSport(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sport": sport}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sportService.DeleteSport(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
