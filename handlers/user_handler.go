package handlers

import (
	"net/http"

	"github.com/JDR69/DeporteDubss/middleware"
	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var role *models.UserRole
	if roleParam := r.URL.Query().Get("role"); roleParam != "" {
		value := models.UserRole(roleParam)
		role = &value
	}

	users, err := h.userService.List(r.Context(), role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"users": users}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	if currentUserID != id && role != models.RoleAdmin {
		forbiddenResponse(w, r, "cannot edit another user's profile")
		return
	}

	var input services.UpdateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		Role models.UserRole `json:"role"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.SetRole(r.Context(), id, body.Role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
