package main

import (
	"log"
	"os"

	"github.com/arnavshah/day-planner-go/pkg/config"
	"github.com/arnavshah/day-planner-go/pkg/database"
	"github.com/arnavshah/day-planner-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB(cfg)
	h, err := handlers.Setup(cfg, db)
	if err != nil {
		log.Fatalf("could not set up handlers: %v", err)
	}
	r := handlers.NewRouter(h)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
