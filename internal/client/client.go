// Package client is an HTTP client for the board registry REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
)

// Client talks to a running boardd instance.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client targeting endpoint. apiKey may be empty when the
// daemon runs without authentication.
func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Endpoint returns the base URL the client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ComponentList mirrors the GET /api/v1/components response.
type ComponentList struct {
	FormFactor string             `json:"form_factor"`
	Count      int                `json:"count"`
	Components []*board.Component `json:"components"`
}

// StatusMap mirrors the GET /api/v1/status response.
type StatusMap struct {
	FormFactor string                  `json:"form_factor"`
	Statuses   map[string]board.Status `json:"statuses"`
}

// BoardSummary mirrors one entry of the board list responses.
type BoardSummary struct {
	ID             string    `json:"id"`
	FormFactor     string    `json:"form_factor"`
	ComponentCount int       `json:"component_count"`
	KindCount      int       `json:"kind_count"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// BoardList mirrors the GET /api/v1/boards response.
type BoardList struct {
	Boards     []BoardSummary `json:"boards"`
	TotalCount int            `json:"total_count"`
}

// BoardDetail mirrors the GET /api/v1/boards/{id} response.
type BoardDetail struct {
	ID           string          `json:"id"`
	RegisteredAt time.Time       `json:"registered_at"`
	Board        *board.Snapshot `json:"board"`
}

// Health mirrors the GET /healthz response.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

func decode[T any](resp *http.Response, want int, op string) (*T, error) {
	defer resp.Body.Close()
	if resp.StatusCode != want {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &out, nil
}

// Components fetches the flattened component list of the reference board.
// formFactor may be empty to use the daemon's default.
func (c *Client) Components(ctx context.Context, formFactor string) (*ComponentList, error) {
	path := "/api/v1/components"
	if formFactor != "" {
		path += "?form_factor=" + url.QueryEscape(formFactor)
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode[ComponentList](resp, http.StatusOK, "list components")
}

// Status fetches the kind-to-status map of the reference board.
func (c *Client) Status(ctx context.Context, formFactor string) (*StatusMap, error) {
	path := "/api/v1/status"
	if formFactor != "" {
		path += "?form_factor=" + url.QueryEscape(formFactor)
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode[StatusMap](resp, http.StatusOK, "component status")
}

// RegisterBoard registers a new board of the given form factor.
func (c *Client) RegisterBoard(ctx context.Context, formFactor string) (*BoardSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/boards",
		map[string]string{"form_factor": formFactor})
	if err != nil {
		return nil, err
	}
	return decode[BoardSummary](resp, http.StatusCreated, "register board")
}

// ListBoards fetches board registration summaries.
func (c *Client) ListBoards(ctx context.Context, formFactor string, page, pageSize int) (*BoardList, error) {
	q := url.Values{}
	if formFactor != "" {
		q.Set("form_factor", formFactor)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	path := "/api/v1/boards"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decode[BoardList](resp, http.StatusOK, "list boards")
}

// GetBoard fetches a single board registration by ID. Returns nil, nil when
// the server responds 404.
func (c *Client) GetBoard(ctx context.Context, id string) (*BoardDetail, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/boards/"+id, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, nil
	}
	return decode[BoardDetail](resp, http.StatusOK, "get board "+id)
}

// DeleteBoard removes the board registration with the given ID.
func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/boards/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete board %q: unexpected status %d", id, resp.StatusCode)
	}
	return nil
}

// GetHealth queries the daemon's health endpoint.
func (c *Client) GetHealth(ctx context.Context) (*Health, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("health: decode response: %w", err)
	}
	return &out, nil
}
