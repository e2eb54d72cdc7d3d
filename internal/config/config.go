package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	FrameRate int // frames per second
	FillColor string
}

// Load reads the optional env file named by ENV_FILE (default ".env") and
// then the process environment. Variables already set in the environment win.
func Load() Config {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] Failed to load %s: %v\n", envFile, err)
	}

	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		FrameRate: getEnvInt("FRAME_RATE", 60),
		FillColor: getEnv("FILL_COLOR", "#ff0000"),
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
