package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/logger"
	"github.com/osse101/BurgerClient_Go/internal/metrics"
)

type tokenRequest struct {
	Token string `json:"token"`
}

// TokenResponse is the body of a successful token exchange or login
type TokenResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges the stored refresh token for a new credential pair,
// stores it and returns the new access token. A failure is returned as a
// *RefreshError and announced on the event bus.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	ctx, _ = logger.EnsureRequestID(ctx)

	access, err := c.refresh(ctx)
	if err != nil {
		metrics.RecordRefresh(false)
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
		event.PublishBestEffort(ctx, c.bus, event.NewRefreshFailedEvent(ctx, err.Error()))
		return "", &RefreshError{Err: err}
	}

	metrics.RecordRefresh(true)
	logger.FromContext(ctx).Info(LogMsgTokenRefreshed)
	return access, nil
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	refreshToken, err := c.creds.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return "", domain.ErrNoRefreshToken
	}

	payload, err := jsonBody(tokenRequest{Token: refreshToken})
	if err != nil {
		return "", err
	}

	res, err := c.send(ctx, http.MethodPost, PathRefreshToken, payload, false, "", attemptFirst)
	if err != nil {
		return "", err
	}
	if res.declaredFailure() {
		return "", NewAPIError(res.status, res.envelope.Message)
	}

	var tokens TokenResponse
	if err := decodeBody(res.body, &tokens); err != nil {
		return "", err
	}
	if tokens.AccessToken == "" {
		return "", fmt.Errorf("%w: missing access token", domain.ErrInvalidResponse)
	}

	if err := c.SaveCredentials(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

// SaveCredentials stores a newly issued pair through the credential store,
// the same SavePair path the session uses after login and registration.
func (c *Client) SaveCredentials(ctx context.Context, access, refresh string) error {
	if err := c.creds.SavePair(ctx, access, refresh); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgCredentialsSaved)
	return nil
}
