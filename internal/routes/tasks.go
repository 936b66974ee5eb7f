package routes

import (
	"net/http"

	"github.com/gorilla/mux"
)

func registerTaskRoutes(router *mux.Router, d Deps) {
	protectedRouter := protected(router, "/task", d)

	protectedRouter.HandleFunc("/create", d.Tasks.Create).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/all", d.Tasks.ListMine).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/get/{id}", d.Tasks.Get).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/team/{team_id}", d.Tasks.ListForTeam).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/update/{id}", d.Tasks.Update).Methods(http.MethodPut)
	protectedRouter.HandleFunc("/delete/{id}", d.Tasks.Delete).Methods(http.MethodDelete)

	// Assignees
	protectedRouter.HandleFunc("/{id}/assignees", d.Tasks.Assign).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/{id}/assignees/{user_id}", d.Tasks.Unassign).Methods(http.MethodDelete)

	// Board maintenance
	protectedRouter.HandleFunc("/reorder", d.Tasks.Reorder).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/overdue", d.Tasks.MarkOverdue).Methods(http.MethodPost)
}
