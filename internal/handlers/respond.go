package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lribeiro/taskboard/internal/middleware"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// writeServiceError maps a service error to its HTTP status. Internal errors
// are masked; everything else carries the rule it violated.
func writeServiceError(w http.ResponseWriter, err error) {
	code := taskerr.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		respondWithError(w, code, "internal error")
		return
	}
	respondWithError(w, code, err.Error())
}

// requesterID pulls the authenticated user id out of the request context,
// answering 401 when the auth middleware did not resolve one.
func requesterID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
	}
	return id, ok
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
