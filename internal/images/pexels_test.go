package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindImage(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstHit", func(t *testing.T) {
		var gotAuth, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotQuery = r.URL.Query().Get("query")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"photos": [{"src": {"medium": "https://images.test/tacos-medium.jpg"}}]}`))
		}))
		defer server.Close()

		client := NewPexelsClientWithBaseURL("test-key", server.URL)
		url, err := client.FindImage(ctx, "Tacos Meals")
		if err != nil {
			t.Fatalf("FindImage failed: %v", err)
		}
		if url != "https://images.test/tacos-medium.jpg" {
			t.Errorf("Expected medium URL of the first hit, got '%s'", url)
		}
		if gotAuth != "test-key" {
			t.Errorf("Expected API key in Authorization header, got '%s'", gotAuth)
		}
		if gotQuery != "Tacos Meals" {
			t.Errorf("Expected query 'Tacos Meals', got '%s'", gotQuery)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"photos": []}`))
		}))
		defer server.Close()

		client := NewPexelsClientWithBaseURL("test-key", server.URL)
		url, err := client.FindImage(ctx, "nonexistent dish")
		if err != nil {
			t.Fatalf("Expected no error for empty result, got %v", err)
		}
		if url != "" {
			t.Errorf("Expected empty URL for no match, got '%s'", url)
		}
	})

	t.Run("APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewPexelsClientWithBaseURL("test-key", server.URL)
		if _, err := client.FindImage(ctx, "Tacos"); err == nil {
			t.Fatal("Expected an error for non-200 status, got nil")
		}
	})
}
