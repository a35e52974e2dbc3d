package notion

import (
	"net/http"
	"time"
)

// Config holds Notion client settings.
type Config struct {
	Token      string
	DatabaseID string
	Version    string // Notion-Version header
	BaseURL    string
	HTTPClient *http.Client
}

// CreatePageRequest describes a new database row.
type CreatePageRequest struct {
	Title  string
	Status string
	Due    *time.Time
	Repeat string
}

// UpdatePageRequest changes the status and due date of an existing row.
// A nil Due clears the property.
type UpdatePageRequest struct {
	PageID string
	Status string
	Due    *time.Time
}

// Page is a created Notion page.
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ErrorResponse is the error body returned on non-200 statuses.
type ErrorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type pageRequest struct {
	Parent     *parent        `json:"parent,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Archived   *bool          `json:"archived,omitempty"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type richText struct {
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type option struct {
	Name string `json:"name"`
}

type date struct {
	Start string `json:"start"`
}
