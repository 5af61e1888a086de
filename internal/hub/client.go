package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://huggingface.co"

// HTTPDoer allows tests to fake HTTP transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Hugging Face Hub API.
type Client struct {
	token      string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a hub client. An empty token is allowed for public
// repos; baseURL defaults to the public hub.
func NewClient(token, baseURL string, httpClient HTTPDoer) *Client {
	cleanBaseURL := strings.TrimSpace(baseURL)
	if cleanBaseURL == "" {
		cleanBaseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		token:      strings.TrimSpace(token),
		baseURL:    strings.TrimRight(cleanBaseURL, "/"),
		httpClient: httpClient,
	}
}

// RepoExists reports whether a model repo is published on the hub.
func (c *Client) RepoExists(ctx context.Context, repoID string) (bool, error) {
	if strings.TrimSpace(repoID) == "" {
		return false, fmt.Errorf("repo id is required")
	}

	url := c.baseURL + "/api/models/" + repoID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("hub request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return false, fmt.Errorf("hub status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return false, fmt.Errorf("hub status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
