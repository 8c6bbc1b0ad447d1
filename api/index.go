package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/day-planner-go/pkg/config"
	"github.com/arnavshah/day-planner-go/pkg/database"
	"github.com/arnavshah/day-planner-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

var r *gin.Engine

func init() {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)

	db := database.InitDB(cfg)
	h, err := handlers.Setup(cfg, db)
	if err != nil {
		log.Fatalf("could not set up handlers: %v", err)
	}
	r = handlers.NewRouter(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
