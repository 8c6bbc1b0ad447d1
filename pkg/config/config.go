package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment
type Config struct {
	Port          string
	DatabaseURL   string
	DataPath      string
	JWTSecret     string
	MasterSecret  string
	AdminUsername string
	AdminPassword string
	TemplateDir   string
	RolesFile     string
}

// LoadEnv loads the first .env found in the working directory or its parents
func LoadEnv() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the configuration after loading any .env file
func Load() Config {
	LoadEnv()
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only
func FromEnv() Config {
	return Config{
		Port:          getenv("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataPath:      getenv("DATA_PATH", "planner.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		TemplateDir:   getenv("TEMPLATE_DIR", "templates"),
		RolesFile:     os.Getenv("ROLES_FILE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
