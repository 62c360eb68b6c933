package mivideo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"mivideo/internal/services"
)

// acquireToken performs the OAuth2 client-credentials exchange and returns
// the Authorization header value for all subsequent calls. A 401 means the
// credentials were rejected; any other HTTP failure is a token acquisition
// failure. Both kinds stay distinguishable from timeouts and transport errors.
func (c *Client) acquireToken(ctx context.Context, authID, authSecret string) (string, error) {
	basic := base64.StdEncoding.EncodeToString([]byte(authID + ":" + authSecret))
	endpoint := c.origin + "/um/oauth2/token"
	params := url.Values{
		"grant_type": []string{"client_credentials"},
		"scope":      []string{"mivideo"},
	}
	headers := make(http.Header, 1)
	headers.Set("Authorization", "Basic "+basic)

	classify := func(status int, body []byte) error {
		if status == http.StatusUnauthorized {
			return services.Wrap(services.ErrAuthentication, component, "token",
				"credentials rejected", nil)
		}
		return services.Wrap(services.ErrTokenAcquisition, component, "token",
			fmt.Sprintf("unexpected status %d", status), nil)
	}

	body, err := c.do(ctx, "token", http.MethodPost, endpoint, params, headers, classify)
	if err != nil {
		return "", err
	}

	var token struct {
		TokenType   string `json:"token_type"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", services.Wrap(services.ErrTokenAcquisition, component, "token", "decode response", err)
	}
	if token.TokenType == "" || token.AccessToken == "" {
		return "", services.Wrap(services.ErrTokenAcquisition, component, "token", "incomplete token response", nil)
	}
	return token.TokenType + " " + token.AccessToken, nil
}
