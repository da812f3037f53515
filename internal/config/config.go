package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Text generation backends.
const (
	BackendGemini = "gemini"
	BackendGroq   = "groq"
)

// Config holds the configuration for the application.
type Config struct {
	TextBackend  string
	GeminiAPIKey string
	GroqAPIKey   string
	PexelsAPIKey string

	DataDir string
	DBPath  string

	// Identity (optional; without a token the app runs anonymously
	// and skips the remote plan document).
	AuthToken  string
	AuthSecret string

	LogFormat string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	backend := os.Getenv("MEAL4U_TEXT_BACKEND")
	if backend == "" {
		backend = BackendGemini
	}
	if backend != BackendGemini && backend != BackendGroq {
		return nil, fmt.Errorf("unknown text backend %q (expected %q or %q)", backend, BackendGemini, BackendGroq)
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if backend == BackendGemini && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if backend == BackendGroq && groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	dataDir := os.Getenv("MEAL4U_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("MEAL4U_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "meal4u.db")
	}

	authToken := os.Getenv("MEAL4U_AUTH_TOKEN")
	authSecret := os.Getenv("MEAL4U_AUTH_SECRET")
	if authToken != "" && authSecret == "" {
		return nil, fmt.Errorf("MEAL4U_AUTH_SECRET environment variable not set (required when MEAL4U_AUTH_TOKEN is provided)")
	}

	logFormat := os.Getenv("MEAL4U_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		TextBackend:  backend,
		GeminiAPIKey: geminiAPIKey,
		GroqAPIKey:   groqAPIKey,
		PexelsAPIKey: os.Getenv("PEXELS_API_KEY"),
		DataDir:      dataDir,
		DBPath:       dbPath,
		AuthToken:    authToken,
		AuthSecret:   authSecret,
		LogFormat:    logFormat,
	}, nil
}
