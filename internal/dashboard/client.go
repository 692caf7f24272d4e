// Package dashboard holds the terminal dashboard: an HTTP client for the
// bill API, a state cache that mirrors the server, and a confirmation
// rendezvous for destructive actions.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"contaluz/internal/domain"
	"contaluz/internal/port"
)

// BillRow is a bill as the API returns it, with the derived values the
// server computed at render time.
type BillRow struct {
	domain.Bill
	ConsumedEnergyValue float64 `json:"consumed_energy_value"`
	DiscountedValue     float64 `json:"discounted_value"`
}

// BillAPI is the remote surface the dashboard consumes.
type BillAPI interface {
	Login(ctx context.Context, email, password string) error
	Process(ctx context.Context, docs []port.BillDocument) (string, error)
	List(ctx context.Context) ([]BillRow, error)
	Summary(ctx context.Context) (*domain.Summary, error)
	TogglePaid(ctx context.Context, id int64) (*BillRow, error)
	ToggleCompensationType(ctx context.Context, id int64) (*BillRow, error)
	SetDiscount(ctx context.Context, id int64, value float64) (*BillRow, error)
	Delete(ctx context.Context, id int64) (*BillRow, error)
}

// Client is an HTTP BillAPI against a running server.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("dashboard.Client: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("dashboard.Client: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dashboard.Client: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("dashboard.Client: decoding response: %w", err)
	}
	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("dashboard.Client: decoding data: %w", err)
		}
	}
	return nil
}

// Login authenticates and stores the access token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &pair); err != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	return nil
}

// Process uploads encoded documents and returns the batch message.
func (c *Client) Process(ctx context.Context, docs []port.BillDocument) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	body := map[string]any{"files": docs}
	if err := c.do(ctx, http.MethodPost, "/api/v1/bills/process", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) List(ctx context.Context) ([]BillRow, error) {
	var rows []BillRow
	if err := c.do(ctx, http.MethodGet, "/api/v1/bills", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Summary(ctx context.Context) (*domain.Summary, error) {
	var summary domain.Summary
	if err := c.do(ctx, http.MethodGet, "/api/v1/bills/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) TogglePaid(ctx context.Context, id int64) (*BillRow, error) {
	var row BillRow
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/bills/%d/paid", id), nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *Client) ToggleCompensationType(ctx context.Context, id int64) (*BillRow, error) {
	var row BillRow
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/bills/%d/compensation-type", id), nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *Client) SetDiscount(ctx context.Context, id int64, value float64) (*BillRow, error) {
	var row BillRow
	body := map[string]float64{"value": value}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/bills/%d/discount", id), body, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *Client) Delete(ctx context.Context, id int64) (*BillRow, error) {
	var row BillRow
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/bills/%d", id), nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}
