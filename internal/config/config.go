package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage        string
	Port         int
	DbDriver     string
	DatabaseUrl  string
	MigrationDir string
	LogLevel     zerolog.Level
	RulesFile    string
	CatalogFile  string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the environment, loading envFile first outside prod.
func Load(envFile string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:        getEnv("STAGE", StageDev),
		DbDriver:     getEnv("DB_DRIVER", "none"),
		DatabaseUrl:  os.Getenv("DATABASE_URL"),
		MigrationDir: getEnv("MIGRATION_DIR", "db/migration"),
		RulesFile:    os.Getenv("RULES_FILE"),
		CatalogFile:  os.Getenv("CATALOG_FILE"),
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got %q", cfg.Stage)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8000"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.DbDriver != "none" && cfg.DatabaseUrl == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required for driver %s", cfg.DbDriver)
	}
	return cfg, nil
}
