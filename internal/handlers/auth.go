package handlers

import (
	"encoding/json"
	"net/http"

	authService "github.com/lribeiro/taskboard/internal/service/auth"
)

type AuthHandler struct {
	Service *authService.Service
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(service *authService.Service) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Signup handles the user registration request
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in authService.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, token, err := h.Service.Signup(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "User created successfully",
		"user_details": user,
		"token":        token,
	})
}

// Login handles the user authentication request
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, token, err := h.Service.Login(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":        token,
		"user_details": user,
	})
}
