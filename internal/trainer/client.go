package trainer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer allows tests to fake HTTP transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// JobRequest describes one fine-tuning job submission.
type JobRequest struct {
	BaseModel  string     `json:"base_model"`
	OutputRepo string     `json:"output_repo"`
	Character  string     `json:"character"`
	Prompts    []string   `json:"prompts"`
	Lora       LoraConfig `json:"lora"`
	SFT        SFTConfig  `json:"sft"`
}

// Job is the trainer's view of a submitted fine-tune.
type Job struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	OutputRepo string `json:"output_repo"`
	Error      string `json:"error"`
}

// Client submits fine-tuning jobs to the external trainer service.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a trainer client for the given service endpoint.
func NewClient(apiKey, baseURL string, httpClient HTTPDoer) (*Client, error) {
	cleanBaseURL := strings.TrimSpace(baseURL)
	if cleanBaseURL == "" {
		return nil, errors.New("trainer base url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(cleanBaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// SubmitJob sends the prepared dataset plus hyperparameters to the trainer.
func (c *Client) SubmitJob(ctx context.Context, req JobRequest) (Job, error) {
	if strings.TrimSpace(req.BaseModel) == "" {
		return Job{}, errors.New("base model is required")
	}
	if strings.TrimSpace(req.OutputRepo) == "" {
		return Job{}, errors.New("output repo is required")
	}
	if len(req.Prompts) == 0 {
		return Job{}, errors.New("prompts are empty")
	}
	return c.post(ctx, "/v1/fine-tunes", req)
}

// JobStatus fetches the current state of a submitted job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return Job{}, errors.New("job id is required")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/fine-tunes/"+jobID, nil)
	if err != nil {
		return Job{}, fmt.Errorf("build request: %w", err)
	}
	return c.send(request)
}

func (c *Client) post(ctx context.Context, path string, body any) (Job, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Job{}, fmt.Errorf("marshal trainer request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Job{}, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	return c.send(request)
}

func (c *Client) send(request *http.Request) (Job, error) {
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Job{}, fmt.Errorf("trainer request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Job{}, fmt.Errorf("read trainer response: %w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return Job{}, fmt.Errorf("trainer status %d: %s", response.StatusCode, apiErr.Error)
		}
		return Job{}, fmt.Errorf("trainer status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return Job{}, fmt.Errorf("decode trainer response: %w", err)
	}
	if job.Error != "" {
		return job, fmt.Errorf("trainer job error: %s", job.Error)
	}
	if job.ID == "" {
		return Job{}, errors.New("trainer returned no job id")
	}
	return job, nil
}
