package routes

import (
	"net/http"

	"github.com/gorilla/mux"
)

func registerUserRoutes(router *mux.Router, d Deps) {
	protectedRouter := protected(router, "/user", d)

	// User profile routes
	protectedRouter.HandleFunc("/profile", d.Profile.Get).Methods(http.MethodGet)
	protectedRouter.HandleFunc("/profile", d.Profile.Update).Methods(http.MethodPut)
	protectedRouter.HandleFunc("/profile", d.Profile.Delete).Methods(http.MethodDelete)
}
