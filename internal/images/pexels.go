// Package images looks up stock photos for generated recipes.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.pexels.com"

// PexelsClient is a client for the Pexels photo search API.
type PexelsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPexelsClient creates a new Pexels API client.
func NewPexelsClient(apiKey string) *PexelsClient {
	return &PexelsClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewPexelsClientWithBaseURL creates a client against a custom endpoint.
func NewPexelsClientWithBaseURL(apiKey, baseURL string) *PexelsClient {
	c := NewPexelsClient(apiKey)
	c.baseURL = baseURL
	return c
}

// FindImage searches for a photo matching the query and returns the first
// hit's medium-sized URL, or an empty string when nothing matches.
func (c *PexelsClient) FindImage(ctx context.Context, query string) (string, error) {
	searchURL := fmt.Sprintf("%s/v1/search?query=%s&per_page=1&orientation=landscape",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("pexels api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp struct {
		Photos []struct {
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Photos) == 0 {
		return "", nil
	}
	return searchResp.Photos[0].Src.Medium, nil
}
