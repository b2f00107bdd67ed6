package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"proofsheet/auth"
	"proofsheet/config"
	"proofsheet/database"
	"proofsheet/handlers"
	"proofsheet/inventory"
	"proofsheet/preview"
	"proofsheet/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer store.Close()

	inv := inventory.New(cfg.ProjectsDir)
	projects := workflow.NewService(store, inv, preview.NewDeriver(), cfg.StrictSelection).
		WithUploadLimit(cfg.MaxUploadFiles)
	authService := auth.NewService(store, cfg.JWTSecret, cfg.JWTExpiration)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.SeedEmail != "" {
		if err := authService.Seed(ctx, cfg.SeedEmail, cfg.SeedPassword); err != nil {
			log.Fatal("Failed to seed photographer account:", err)
		}
	}

	r := gin.Default()
	handlers.Register(r, handlers.Deps{
		Config:    cfg,
		Auth:      authService,
		Projects:  projects,
		Inventory: inv,
	})

	log.Printf("Server starting on :%s (driver=%s, projects=%s)", cfg.Port, cfg.DatabaseDriver, cfg.ProjectsDir)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
