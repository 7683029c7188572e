package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// Database
	DatabaseURL string
	// Speech-to-text
	OpenAIAPIKey string
	STTModel     string
	// Staff login seeded at startup
	AdminUsername string
	AdminPassword string
	// Installer photo uploads
	PhotoDir string
	// Voice client intake
	IntakePromptsFile    string
	IntakeRequireTrigger bool
	SessionTTL           time.Duration
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:                 getEnvDefault("PORT", "8080"),
		AllowedOrigin:        getEnvDefault("ALLOWED_ORIGIN", "*"),
		DatabaseURL:          os.Getenv("DB_URL"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		STTModel:             getEnvDefault("OPENAI_STT_MODEL", "whisper-1"),
		AdminUsername:        getEnvDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:        getEnvDefault("ADMIN_PASSWORD", "password"),
		PhotoDir:             getEnvDefault("PHOTO_DIR", "data/photos"),
		IntakePromptsFile:    getEnvDefault("INTAKE_PROMPTS_FILE", "prompts/intake.yaml"),
		IntakeRequireTrigger: getEnvBoolDefault("INTAKE_REQUIRE_TRIGGER", false),
		SessionTTL:           time.Duration(getEnvIntDefault("SESSION_TTL_MINUTES", 30)) * time.Minute,
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; voice transcription will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvIntDefault reads a non-negative integer; zero is a valid value
// (SESSION_TTL_MINUTES=0 turns intake expiry off).
func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}
