package routes

import (
	"github.com/gorilla/mux"

	"github.com/lribeiro/taskboard/internal/handlers"
	"github.com/lribeiro/taskboard/internal/middleware"
)

// Deps carries the wired handlers; everything is injected from main.
type Deps struct {
	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	Teams     *handlers.TeamHandler
	Tasks     *handlers.TaskHandler
	JWTSecret string
}

// List of all route registration functions
var routeModules = []func(*mux.Router, Deps){
	registerAuthRoutes,
	registerUserRoutes,
	registerTeamRoutes,
	registerTaskRoutes,
}

// RegisterAll builds the router and registers every route group.
func RegisterAll(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	for _, register := range routeModules {
		register(router, d)
	}

	return router
}

// protected returns a subrouter under prefix that requires authentication.
func protected(router *mux.Router, prefix string, d Deps) *mux.Router {
	sub := router.PathPrefix(prefix).Subrouter()
	sub.Use(middleware.Auth(d.JWTSecret), middleware.ResponseWrapperMiddleware)
	return sub
}
