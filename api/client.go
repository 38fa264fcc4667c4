package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/open-cli-collective/sanity-cli/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
)

// Perspective values accepted by the query endpoint.
const (
	PerspectiveRaw       = "raw"
	PerspectivePublished = "published"
	PerspectiveDrafts    = "drafts"
)

// Client is the Sanity content API client.
type Client struct {
	baseURL    string
	dataset    string
	token      string
	httpClient *http.Client

	// Perspective is sent with every query when set.
	Perspective string
}

// NewClient creates a new Sanity API client. baseURL is the versioned API
// root as returned by BaseURL. token may be empty for public datasets.
func NewClient(baseURL, dataset, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		dataset: dataset,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Dataset returns the dataset the client reads from.
func (c *Client) Dataset() string {
	return c.dataset
}

// do executes an HTTP request and returns the response body.
// path may carry a raw query string.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := logging.GetLogger("api")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("method", method).Str("path", req.URL.Path).Msg("Request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		errResp.StatusCode = resp.StatusCode
		return nil, &errResp
	}

	return respBody, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}
