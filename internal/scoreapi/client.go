package scoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts finished runs to a score server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL (e.g. http://host:8080).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Post submits one run and returns the stored entry.
func (c *Client) Post(ctx context.Context, sub Submission) (Entry, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Entry{}, fmt.Errorf("scoreapi: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/score", bytes.NewReader(body))
	if err != nil {
		return Entry{}, fmt.Errorf("scoreapi: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("scoreapi: post score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Entry{}, fmt.Errorf("scoreapi: post score: %s", statusError(resp))
	}

	var e Entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("scoreapi: decode response: %w", err)
	}
	return e, nil
}

// Top fetches the leaderboard for mode.
func (c *Client) Top(ctx context.Context, mode string, limit int) ([]Entry, error) {
	url := fmt.Sprintf("%s/api/scores?mode=%s&limit=%d", c.baseURL, mode, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("scoreapi: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoreapi: list scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreapi: list scores: %s", statusError(resp))
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("scoreapi: decode response: %w", err)
	}
	return entries, nil
}

func statusError(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if json.Unmarshal(b, &body) == nil && body.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status, body.Error)
	}
	return resp.Status
}
