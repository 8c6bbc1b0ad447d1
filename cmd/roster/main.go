package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/arnavshah/day-planner-go/pkg/scheduler"
	"github.com/arnavshah/day-planner-go/pkg/sheets"
)

func main() {
	date := flag.String("date", "", "roster date (YYYY-MM-DD)")
	workersFile := flag.String("workers", "", "worker list as JSON or an availability .xlsx")
	templateFile := flag.String("template", "", "role template .xlsx")
	rolesFile := flag.String("roles", "", "role config YAML (defaults to the built-in catalog)")
	icaMorning := flag.Int("ica-morning", 2, "ICA roles filled in the morning (2-4)")
	icaAfternoon := flag.Int("ica-afternoon", 2, "ICA roles filled in the afternoon (2-4)")
	extendUntil := flag.Int("extend-until", 0, "carry afternoon roles into the evening until this hour (16, 17 or 18)")
	out := flag.String("out", "", "output .xlsx (defaults to roster-<date>.xlsx)")
	flag.Parse()

	if *date == "" || *workersFile == "" || *templateFile == "" {
		die("--date, --workers and --template are required")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	workers, err := readWorkers(*workersFile, logger)
	if err != nil {
		die("read workers: %v", err)
	}
	tpl, err := readTemplate(*templateFile)
	if err != nil {
		die("read template: %v", err)
	}

	var cfg *scheduler.Config
	if *rolesFile != "" {
		if cfg, err = scheduler.LoadConfig(*rolesFile); err != nil {
			die("%v", err)
		}
	}

	engine := scheduler.New(cfg, scheduler.WithLogger(logger))
	roster, err := engine.Generate(workers, tpl, models.RunParams{
		Date:         *date,
		ICAMorning:   *icaMorning,
		ICAAfternoon: *icaAfternoon,
		ExtendUntil:  *extendUntil,
	})
	if err != nil {
		die("generate: %v", err)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("roster-%s.xlsx", roster.Date)
	}
	f, err := os.Create(path)
	if err != nil {
		die("create %s: %v", path, err)
	}
	if err := sheets.WriteRoster(f, roster, tpl); err != nil {
		f.Close()
		die("write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		die("close %s: %v", path, err)
	}

	logger.Info("roster written",
		"path", path,
		"spare_morning", len(roster.SpareMorning),
		"spare_afternoon", len(roster.SpareAfternoon),
		"warnings", len(roster.Warnings))
}

func readWorkers(path string, logger *slog.Logger) ([]models.Worker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		workers, skipped, err := sheets.ParseAvailability(f)
		for _, s := range skipped {
			logger.Warn("skipped availability row", "row", s.Row, "reason", s.Reason)
		}
		return workers, err
	}

	var workers []models.Worker
	if err := json.NewDecoder(f).Decode(&workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func readTemplate(path string) (models.RoleTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.RoleTemplate{}, err
	}
	defer f.Close()
	return sheets.ParseTemplate(f, filepath.Base(path))
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
