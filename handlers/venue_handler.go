package handlers

import (
	"net/http"

	"github.com/JDR69/DeporteDubss/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"venues": venues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.venueService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
