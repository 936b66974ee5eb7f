package handlers

import (
	"encoding/json"
	"net/http"

	profileService "github.com/lribeiro/taskboard/internal/service/users"
)

type ProfileHandler struct {
	Service *profileService.Service
}

func NewProfileHandler(service *profileService.Service) *ProfileHandler {
	return &ProfileHandler{Service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	user, err := h.Service.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user_details": user})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var in profileService.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.Service.Update(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "User details updated successfully",
		"user_details": user,
	})
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}
