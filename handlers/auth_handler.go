package handlers

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/JDR69/DeporteDubss/middleware"
	"github.com/JDR69/DeporteDubss/services"
)

type AuthHandler struct {
	authService services.AuthService
	auth        *middleware.Auth
}

func NewAuthHandler(authService services.AuthService, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auth:        auth,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		badRequestResponse(w, r, errors.New("first name, email, and password are required"))
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if body.Email == "" || body.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	input := services.LoginInput{
		Email:     body.Email,
		Password:  body.Password,
		IPAddress: clientIP(r),
	}
	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	response := jsonResponse{
		"token": token,
		"user":  user,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, body.CurrentPassword, body.NewPassword); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "password updated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
