package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenFile is where `remindctl calendar-auth` stores the user token.
const TokenFile = "token.json"

// Client mirrors task deadlines into Google Calendar.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile reads a credentials file and builds a client from it.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON accepts either a service account key or
// OAuth Desktop App credentials. The latter needs TokenFile in the working dir.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	ts, err := tokenSource(ctx, credentialsJSON)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP builds a client on top of an already authorized HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

func tokenSource(ctx context.Context, credentialsJSON []byte) (oauth2.TokenSource, error) {
	if jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope); err == nil {
		return jwtCfg.TokenSource(ctx), nil
	}

	oauthCfg, err := google.ConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	raw, err := os.ReadFile(TokenFile)
	if err != nil {
		return nil, fmt.Errorf("desktop credentials need %s: run `remindctl calendar-auth` or use a service account", TokenFile)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TokenFile, err)
	}
	return oauthCfg.TokenSource(ctx, &tok), nil
}
