package api

import (
	"context"
	"encoding/json"
)

// refreshEndpoint is the backend's token exchange route, relative to the
// gateway proxy base.
const refreshEndpoint = "/api/v1/web/authorization/refresh"

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refreshSession exchanges the stored refresh token for a new access token.
// It returns the new access token, or "" when no refresh is possible or the
// exchange failed. Refresh failures are swallowed; the caller only learns
// "no new token".
//
// Concurrent callers within one refresh window share a single network call
// through the singleflight group: whoever arrives while an exchange is in
// flight waits on that exchange and observes its outcome. The group drops
// the in-flight handle once the call settles, so a later 401 starts a brand
// new attempt instead of replaying a cached failure.
func (c *Client) refreshSession(ctx context.Context) string {
	if c.session.RefreshToken() == "" {
		return ""
	}

	v, _, _ := c.refresh.Do("refresh", func() (any, error) {
		// The shared exchange must not die with the first caller that
		// gives up, so it detaches from the triggering context.
		return c.exchangeRefreshToken(context.WithoutCancel(ctx)), nil
	})
	token, _ := v.(string)
	return token
}

func (c *Client) exchangeRefreshToken(ctx context.Context) string {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return ""
	}

	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return ""
	}

	// No bearer on the exchange itself: the refresh token in the body is
	// the credential.
	status, respBody, err := c.send(ctx, "POST", refreshEndpoint, body, nil, "")
	if err != nil || status < 200 || status > 299 {
		if c.log != nil {
			c.log.Warn(ctx, "token refresh failed", "status", status, "err", err)
		}
		return ""
	}

	var resp refreshResponse
	if err := json.Unmarshal(respBody, &resp); err != nil || resp.AccessToken == "" {
		return ""
	}

	// Persist before resolving, so every waiter sees the new pair. The
	// backend may omit the rotated refresh token; SetPair keeps the old
	// one in that case.
	c.session.SetPair(resp.AccessToken, resp.RefreshToken)
	return resp.AccessToken
}
