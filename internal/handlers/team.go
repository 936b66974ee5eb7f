package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lribeiro/taskboard/internal/models"
	teamService "github.com/lribeiro/taskboard/internal/service/team"
)

type TeamHandler struct {
	Service *teamService.Service
}

func NewTeamHandler(service *teamService.Service) *TeamHandler {
	return &TeamHandler{Service: service}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var in teamService.CreateTeamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := h.Service.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	teams, err := h.Service.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	teamID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	team, err := h.Service.Get(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	teamID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var in teamService.UpdateTeamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := h.Service.Update(r.Context(), userID, teamID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	teamID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, teamID); err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	teamID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	members, err := h.Service.ListMembers(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	teamID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req struct {
		UserID int64       `json:"user_id"`
		Role   models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	membership, err := h.Service.AddMember(r.Context(), userID, teamID, req.UserID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, membership)
}

func (h *TeamHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	membershipID, err := pathID(r, "membership_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid membership ID")
		return
	}

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	membership, err := h.Service.ChangeRole(r.Context(), userID, membershipID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, membership)
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	membershipID, err := pathID(r, "membership_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid membership ID")
		return
	}

	if err := h.Service.RemoveMember(r.Context(), userID, membershipID); err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}
