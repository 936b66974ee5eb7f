package routes

import (
	"net/http"

	"github.com/gorilla/mux"
)

func registerTeamRoutes(router *mux.Router, d Deps) {
	protectedRouter := protected(router, "/team", d)

	protectedRouter.HandleFunc("/create", d.Teams.Create).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/all", d.Teams.ListMine).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/get/{id}", d.Teams.Get).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/update/{id}", d.Teams.Update).Methods(http.MethodPut)
	protectedRouter.HandleFunc("/delete/{id}", d.Teams.Delete).Methods(http.MethodDelete)

	// Membership ledger
	protectedRouter.HandleFunc("/{id}/members", d.Teams.ListMembers).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/{id}/members", d.Teams.AddMember).Methods(http.MethodPost)
	protectedRouter.HandleFunc("/members/{membership_id}/role", d.Teams.ChangeRole).Methods(http.MethodPut)
	protectedRouter.HandleFunc("/members/{membership_id}", d.Teams.RemoveMember).Methods(http.MethodDelete)
}
