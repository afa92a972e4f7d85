// Package airtable is a thin data-access layer over the Airtable REST API:
// a minimal HTTP client, a schema-driven field codec, and a generic
// per-table CRUD adapter.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to reach one Airtable base.
type Config struct {
	APIKey  string
	BaseID  string
	BaseURL string // defaults to the public API endpoint
	Timeout time.Duration
}

// Client issues authenticated requests against a single base. Every call is
// bounded by the configured timeout on top of the caller's context.
type Client struct {
	apiKey  string
	baseID  string
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.airtable.com/v0"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseID:  cfg.BaseID,
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Record is one stored row: the store-assigned identifier plus its fields.
type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airtable: status %d: %s", e.Code, e.Body)
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// List fetches every record of the table, following offset pagination. An
// optional filterByFormula expression restricts the result server-side.
func (c *Client) List(ctx context.Context, table, formula string) ([]Record, error) {
	var all []Record
	offset := ""
	for {
		q := url.Values{}
		if formula != "" {
			q.Set("filterByFormula", formula)
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table, "", q), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// Get fetches a single record by identifier.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table, id, nil), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new record and returns it with its assigned identifier.
func (c *Client) Create(ctx context.Context, table string, fields Fields) (*Record, error) {
	var rec Record
	body := map[string]any{"fields": fields}
	if err := c.do(ctx, http.MethodPost, c.tableURL(table, "", nil), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update overwrites the given fields of an existing record.
func (c *Client) Update(ctx context.Context, table, id string, fields Fields) (*Record, error) {
	var rec Record
	body := map[string]any{"fields": fields}
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table, id, nil), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record by identifier.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table, id, nil), nil, nil)
}

func (c *Client) tableURL(table, id string, q url.Values) string {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("airtable: encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return fmt.Errorf("airtable: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("airtable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("airtable: decode response: %w", err)
	}
	return nil
}
