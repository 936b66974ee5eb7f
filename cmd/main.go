package main

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/lribeiro/taskboard/internal/config"
	"github.com/lribeiro/taskboard/internal/database"
	"github.com/lribeiro/taskboard/internal/handlers"
	"github.com/lribeiro/taskboard/internal/logger"
	"github.com/lribeiro/taskboard/internal/routes"
	authService "github.com/lribeiro/taskboard/internal/service/auth"
	taskService "github.com/lribeiro/taskboard/internal/service/task"
	teamService "github.com/lribeiro/taskboard/internal/service/team"
	profileService "github.com/lribeiro/taskboard/internal/service/users"
	mysqlstore "github.com/lribeiro/taskboard/internal/store/mysql"
)

func main() {
	log := logger.NewLogger("taskboard")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure database schema", "error", err)
	}
	log.Info("Database connected", "host", cfg.Database.Host, "db", cfg.Database.DBName)

	stores := mysqlstore.NewStores(db)

	authSvc := authService.NewService(stores.Users, cfg.JWT, logger.NewLogger("auth-service"))
	profileSvc := profileService.NewService(stores.Users, logger.NewLogger("profile-service"))
	teamSvc := teamService.NewService(stores.Teams, stores.Memberships, stores.Users, logger.NewLogger("team-service"))
	taskSvc := taskService.NewService(stores.Tasks, stores.Memberships, logger.NewLogger("task-service"))

	router := routes.RegisterAll(routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Profile:   handlers.NewProfileHandler(profileSvc),
		Teams:     handlers.NewTeamHandler(teamSvc),
		Tasks:     handlers.NewTaskHandler(taskSvc),
		JWTSecret: cfg.JWT.Secret,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	log.Info("Server is running", "port", cfg.Server.Port, "env", cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
