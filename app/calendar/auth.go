package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

// ErrAuthorizationPending signals that no stored token exists and the
// operator has to complete the consent flow before sync can run.
var ErrAuthorizationPending = errors.New("calendar authorization pending")

// Authorizer produces OAuth2-authorized HTTP clients from an
// installed-app credentials file and a persisted token file.
type Authorizer struct {
	credentialsFile string
	tokenFile       string
}

func NewAuthorizer(credentialsFile, tokenFile string) *Authorizer {
	return &Authorizer{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
	}
}

// Client returns an authorized HTTP client. Without a stored token the
// non-interactive variant logs the consent URL and fails with
// ErrAuthorizationPending; the interactive variant prompts for the
// auth code on stdin and persists the exchanged token.
func (a *Authorizer) Client(ctx context.Context, interactive bool) (*http.Client, error) {
	data, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(data, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	token, err := a.loadToken()
	if err != nil {
		if !interactive {
			slog.Warn("Calendar authorization required", "url", config.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			return nil, ErrAuthorizationPending
		}

		token, err = a.exchangeAuthCode(ctx, config)
		if err != nil {
			return nil, err
		}
	}

	source := &persistingTokenSource{
		source:    config.TokenSource(ctx, token),
		tokenFile: a.tokenFile,
		last:      token.AccessToken,
	}

	return oauth2.NewClient(ctx, source), nil
}

func (a *Authorizer) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

func (a *Authorizer) exchangeAuthCode(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in a browser, then paste the authorization code:\n%s\n", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := saveToken(a.tokenFile, token); err != nil {
		return nil, err
	}

	return token, nil
}

func saveToken(tokenFile string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}

	if err := os.WriteFile(tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// persistingTokenSource writes refreshed tokens back to disk so a
// refresh survives process restarts.
type persistingTokenSource struct {
	source    oauth2.TokenSource
	tokenFile string
	last      string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := saveToken(s.tokenFile, token); err != nil {
			slog.Warn("Failed to persist refreshed token", "error", err)
		}
	}

	return token, nil
}
