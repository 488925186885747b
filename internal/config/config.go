package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Game struct {
	// Show the water around a computer ship once the player sinks it.
	MarkVerifiedEmpty bool
	SoundEnabled      bool
}

type Config struct {
	Stage           string
	Port            int
	DatabaseURL     string
	MigrationDir    string
	SessionLifetime time.Duration
	Game            Game
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment. Outside prod a .env file in the working
// directory is loaded first; a missing file is not an error.
func Load() (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:           getenv("STAGE", StageDev),
		Port:            getenvInt("PORT", 8000),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationDir:    getenv("MIGRATION_DIR", "file://db/migration"),
		SessionLifetime: time.Duration(getenvInt("SESSION_CLEANUP_MINUTES", 20)) * time.Minute,
		Game: Game{
			MarkVerifiedEmpty: getenvBool("MARK_VERIFIED_EMPTY", true),
			SoundEnabled:      getenvBool("SOUND_ENABLED", true),
		},
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %s", cfg.Stage)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
