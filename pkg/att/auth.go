package att

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/bryanrite/att-speech/pkg/jsontree"
)

const tokenPath = "/oauth/access_token"

// exchangeToken performs the client-credentials grant and stores the tokens.
// It is called once, from NewClientWithConfig.
func (c *Client) exchangeToken(ctx context.Context) error {
	const op = "token"

	form := url.Values{
		"client_id":     {c.config.APIKey},
		"client_secret": {c.config.SecretKey},
		"grant_type":    {GrantType},
		"scope":         {string(c.config.Scope)},
	}

	resp, err := c.http.post(ctx, op, tokenPath, strings.NewReader(form.Encode()), func(r *http.Request) {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	})
	if err != nil {
		return err
	}

	body, err := decodeJSON(op, resp)
	if err != nil {
		return err
	}

	access, okAccess := tokenField(body, "access_token")
	refresh, okRefresh := tokenField(body, "refresh_token")
	if !okAccess || !okRefresh {
		return &Error{
			Kind:       KindAuthentication,
			Op:         op,
			StatusCode: resp.status,
			Message:    authErrorText(body, resp.status),
		}
	}

	c.token = (&oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}).WithExtra(jsontree.Plain(body))

	c.config.logger.DebugContext(ctx, "att: access token acquired",
		"scope", c.config.Scope,
		"base_url", c.config.BaseURL)
	return nil
}

// tokenField returns a string field; absent, null and non-string values are
// reported as missing.
func tokenField(body *jsontree.Object, key string) (string, bool) {
	v, ok := body.Get(key)
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func authErrorText(body *jsontree.Object, status int) string {
	v, ok := body.Get("error")
	if !ok || v == nil {
		return fmt.Sprintf("token response has no access_token or refresh_token (HTTP %d %s)", status, http.StatusText(status))
	}

	text, isString := v.(string)
	if !isString {
		data, err := json.Marshal(v)
		if err != nil {
			text = fmt.Sprint(v)
		} else {
			text = string(data)
		}
	}
	if desc := body.String("error_description"); desc != "" {
		text += ": " + desc
	}
	return text
}
