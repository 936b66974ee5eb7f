package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lribeiro/taskboard/internal/models"
	taskService "github.com/lribeiro/taskboard/internal/service/task"
	"github.com/lribeiro/taskboard/internal/store"
)

type TaskHandler struct {
	Service *taskService.Service
}

func NewTaskHandler(service *taskService.Service) *TaskHandler {
	return &TaskHandler{Service: service}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var in taskService.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.Service.Get(r.Context(), userID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// ListMine returns every task across the requester's teams.
func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	tasks, err := h.Service.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *TaskHandler) ListForTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	teamID, err := pathID(r, "team_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID")
		return
	}

	tasks, err := h.Service.ListForTeam(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// updateTaskRequest mirrors store.TaskPatch; pointer fields distinguish
// "absent" from zero values.
type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position"`
}

func (req updateTaskRequest) patch() store.TaskPatch {
	p := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Position:    req.Position,
	}
	if req.Status != nil {
		st := models.TaskStatus(*req.Status)
		p.Status = &st
	}
	if req.Priority != nil {
		pr := models.TaskPriority(*req.Priority)
		p.Priority = &pr
	}
	return p
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.Update(r.Context(), userID, taskID, req.patch())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req struct {
		AssigneeID int64 `json:"assignee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.Assign(r.Context(), userID, taskID, req.AssigneeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}
	assigneeID, err := pathID(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	task, err := h.Service.Unassign(r.Context(), userID, taskID, assigneeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// Reorder applies a board column drag-and-drop.
func (h *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var req struct {
		TeamID  int64   `json:"team_id"`
		Status  string  `json:"status"`
		TaskIDs []int64 `json:"task_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.ReorderColumn(r.Context(), userID, req.TeamID, models.TaskStatus(req.Status), req.TaskIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Column reordered"})
}

// MarkOverdue runs the overdue sweep, scoped to one team via ?team_id= or to
// all the requester's teams.
func (h *TaskHandler) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var teamID int64
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		var err error
		teamID, err = parseID(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid team ID")
			return
		}
	}

	changed, err := h.Service.MarkOverdueLate(r.Context(), userID, teamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"marked_late": changed})
}
