package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth tokens for Google Calendar access. The
// calendar client takes a provider so token storage can be swapped without
// touching the API layer.
type TokenProvider interface {
	// GetTokenForAccount retrieves an OAuth token for the named account.
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)

	// HasTokenForAccount reports whether a token exists for the named account.
	HasTokenForAccount(account string) bool
}

// FileTokenProvider reads tokens from per-account files in the cache
// directory. This is the provider used by the CLI and the STDIO server.
type FileTokenProvider struct{}

// NewFileTokenProvider creates a file-backed token provider.
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

// GetTokenForAccount loads and refreshes the stored token for the account.
func (p *FileTokenProvider) GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token from file: %w", err)
	}

	return token, nil
}

// HasTokenForAccount reports whether a token file exists for the account.
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}
