package notion

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

// Client implements INotion over the Notion REST API.
type Client struct {
	token      string
	databaseID string
	version    string
	baseURL    string
	client     *http.Client
}

// New creates a new Notion client
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("database id is required")
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		version:    cfg.Version,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		client:     cfg.HTTPClient,
	}, nil
}

// CreatePage adds a row for a task to the configured database.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	status := req.Status
	if status == "" {
		status = StatusOpen
	}

	props := map[string]any{
		PropertyName:   map[string]any{"title": []richText{{Text: textContent{Content: req.Title}}}},
		PropertyStatus: selectProperty(status),
	}
	if req.Due != nil {
		props[PropertyDue] = dateProperty(req.Due)
	}
	if req.Repeat != "" {
		props[PropertyRepeat] = map[string]any{"rich_text": []richText{{Text: textContent{Content: req.Repeat}}}}
	}

	var page Page
	body := pageRequest{Parent: &parent{DatabaseID: c.databaseID}, Properties: props}
	if err := c.do(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage sets Status and Due on an existing row.
func (c *Client) UpdatePage(ctx context.Context, req UpdatePageRequest) error {
	if req.PageID == "" {
		return fmt.Errorf("page id is required")
	}

	props := map[string]any{
		PropertyDue: dateProperty(req.Due),
	}
	if req.Status != "" {
		props[PropertyStatus] = selectProperty(req.Status)
	}

	return c.do(ctx, http.MethodPatch, "/pages/"+req.PageID, pageRequest{Properties: props}, nil)
}

// ArchivePage moves a row to the Notion trash.
func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	if pageID == "" {
		return fmt.Errorf("page id is required")
	}
	archived := true
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, pageRequest{Archived: &archived}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Notion-Version", c.version)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Message == "" {
			return fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("API error %d (%s): %s", resp.StatusCode, errResp.Code, errResp.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func selectProperty(name string) map[string]any {
	return map[string]any{"select": option{Name: name}}
}

// dateProperty renders t as a Notion date; nil clears the value.
func dateProperty(t *time.Time) map[string]any {
	if t == nil {
		return map[string]any{"date": nil}
	}
	return map[string]any{"date": date{Start: t.Format(time.RFC3339)}}
}
