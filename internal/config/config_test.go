package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		setEnv("GEMINI_API_KEY", "gemini_key")
		os.Unsetenv("MEAL4U_TEXT_BACKEND")
		os.Unsetenv("MEAL4U_DATA_DIR")
		os.Unsetenv("MEAL4U_DB_PATH")
		os.Unsetenv("MEAL4U_AUTH_TOKEN")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.TextBackend != BackendGemini {
			t.Errorf("Expected default backend '%s', got '%s'", BackendGemini, cfg.TextBackend)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.DataDir != "data" {
			t.Errorf("Expected default data dir 'data', got '%s'", cfg.DataDir)
		}
	})

	t.Run("MissingGeminiAPIKey", func(t *testing.T) {
		setEnv("MEAL4U_TEXT_BACKEND", BackendGemini)
		os.Unsetenv("GEMINI_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("GroqBackend", func(t *testing.T) {
		setEnv("MEAL4U_TEXT_BACKEND", BackendGroq)
		setEnv("GROQ_API_KEY", "groq_key")
		os.Unsetenv("GEMINI_API_KEY")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GroqAPIKey != "groq_key" {
			t.Errorf("Expected GroqAPIKey to be 'groq_key', got '%s'", cfg.GroqAPIKey)
		}
	})

	t.Run("MissingGroqAPIKey", func(t *testing.T) {
		setEnv("MEAL4U_TEXT_BACKEND", BackendGroq)
		os.Unsetenv("GROQ_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GROQ_API_KEY, got nil")
		}
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		setEnv("MEAL4U_TEXT_BACKEND", "llama-at-home")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for unknown backend, got nil")
		}
	})

	t.Run("TokenWithoutSecret", func(t *testing.T) {
		setEnv("MEAL4U_TEXT_BACKEND", BackendGemini)
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("MEAL4U_AUTH_TOKEN", "some.jwt.token")
		os.Unsetenv("MEAL4U_AUTH_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for auth token without secret, got nil")
		}
	})

	t.Run("DBPathDefaultsUnderDataDir", func(t *testing.T) {
		setEnv("MEAL4U_TEXT_BACKEND", BackendGemini)
		setEnv("GEMINI_API_KEY", "gemini_key")
		setEnv("MEAL4U_DATA_DIR", "/tmp/meal4u-test")
		os.Unsetenv("MEAL4U_DB_PATH")
		os.Unsetenv("MEAL4U_AUTH_TOKEN")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DBPath != "/tmp/meal4u-test/meal4u.db" {
			t.Errorf("Expected DB path under data dir, got '%s'", cfg.DBPath)
		}
	})
}
