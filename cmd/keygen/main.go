package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/day-planner-go/pkg/auth"
	"github.com/arnavshah/day-planner-go/pkg/config"
)

func main() {
	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <name>")
		os.Exit(1)
	}

	name := os.Args[1]
	if strings.Contains(name, ".") {
		fmt.Println("Error: name must not contain '.'")
		os.Exit(1)
	}
	if cfg.MasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	key := auth.New(cfg.JWTSecret, cfg.MasterSecret).GenerateKey(name)
	fmt.Printf("Generated Key for %s:\n%s\n", name, key)
}
