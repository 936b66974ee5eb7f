package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lribeiro/taskboard/internal/middleware"
)

func registerAuthRoutes(router *mux.Router, d Deps) {
	// Public routes without auth middleware
	publicRouter := router.PathPrefix("/auth").Subrouter()
	publicRouter.Use(middleware.ResponseWrapperMiddleware)
	publicRouter.HandleFunc("/signup", d.Auth.Signup).Methods(http.MethodPost)
	publicRouter.HandleFunc("/login", d.Auth.Login).Methods(http.MethodPost)
}
