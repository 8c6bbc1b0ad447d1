package handlers

import (
	"fmt"

	"github.com/arnavshah/day-planner-go/pkg/auth"
	"github.com/arnavshah/day-planner-go/pkg/config"
	"github.com/arnavshah/day-planner-go/pkg/metrics"
	"github.com/arnavshah/day-planner-go/pkg/scheduler"
	"github.com/arnavshah/day-planner-go/pkg/templates"
	"gorm.io/gorm"
)

// Setup builds a Handler from the environment configuration. It seeds the
// admin user and loads the role config named by ROLES_FILE, if any.
func Setup(cfg config.Config, db *gorm.DB) (*Handler, error) {
	a := auth.New(cfg.JWTSecret, cfg.MasterSecret)
	if err := a.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	var roles *scheduler.Config
	if cfg.RolesFile != "" {
		var err error
		if roles, err = scheduler.LoadConfig(cfg.RolesFile); err != nil {
			return nil, err
		}
	}

	catalog, err := templates.NewCatalog(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	return &Handler{
		DB:      db,
		Auth:    a,
		Engine:  scheduler.New(roles),
		Catalog: catalog,
		Metrics: metrics.NewRecorder(),
	}, nil
}
