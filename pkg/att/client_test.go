package att

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_InvalidScope(t *testing.T) {
	fake, srv := startFake(t)

	for _, scope := range []Scope{"", "speech", "tts", "Speech", "SPEECH ", "ASR", "STT"} {
		t.Run(string(scope), func(t *testing.T) {
			c, err := NewClient(context.Background(), "key", "secret", scope, WithBaseURL(srv.URL), quiet())
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), "scope must be SPEECH or TTS")
		})
	}

	assert.Zero(t, fake.count(tokenPath), "no token request for invalid config")
}

func TestNewClientWithConfig_Zero(t *testing.T) {
	c, err := NewClientWithConfig(context.Background(), Config{}, quiet())
	require.Error(t, err)
	assert.Nil(t, c)

	e, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, e.IsConfiguration())
	assert.Equal(t, "new", e.Op)
	assert.Contains(t, err.Error(), "scope")
	assert.Contains(t, err.Error(), "api key is required")
	assert.Contains(t, err.Error(), "secret key is required")
}

func TestNewClient_EmptySecretNotSent(t *testing.T) {
	fake, srv := startFake(t)

	_, err := NewClient(context.Background(), "key", "", ScopeSpeech, WithBaseURL(srv.URL), quiet())
	require.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrAuthentication)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Empty(t, fake.requests[tokenPath], "no token request is sent")
}

func TestNewClientWithConfig_InvalidBaseURL(t *testing.T) {
	_, err := NewClientWithConfig(context.Background(), Config{
		APIKey:    "key",
		SecretKey: "secret",
		Scope:     ScopeSpeech,
		BaseURL:   "api.att.com",
	}, quiet())
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), `base url "api.att.com"`)
}

func TestNewClient_Token(t *testing.T) {
	fake, srv := startFake(t)
	c := newTestClient(t, srv, ScopeSpeech)

	assert.Equal(t, "A", c.AccessToken())
	assert.Equal(t, "B", c.RefreshToken())
	assert.Equal(t, 1, fake.count(tokenPath))

	req := fake.last(t, tokenPath)
	assert.Equal(t, "key", req.form.Get("client_id"))
	assert.Equal(t, "secret", req.form.Get("client_secret"))
	assert.Equal(t, "client_credentials", req.form.Get("grant_type"))
	assert.Equal(t, "SPEECH", req.form.Get("scope"))
	assert.Equal(t, "application/x-www-form-urlencoded", req.header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.header.Get("Accept"))
	assert.Equal(t, DefaultUserAgent, req.header.Get("User-Agent"))
	assert.Empty(t, req.header.Get("Authorization"))
}

func TestNewClient_AcceptByScope(t *testing.T) {
	fake, srv := startFake(t)

	newTestClient(t, srv, ScopeTTS)
	req := fake.last(t, tokenPath)
	assert.Equal(t, "audio/x-wav", req.header.Get("Accept"))
	assert.Equal(t, "TTS", req.form.Get("scope"))

	newTestClient(t, srv, ScopeSpeech)
	req = fake.last(t, tokenPath)
	assert.Equal(t, "application/json", req.header.Get("Accept"))
}

func TestNewClient_CamelCaseTokenResponse(t *testing.T) {
	fake, srv := startFake(t)
	fake.tokenBody = `{"accessToken":"X","refreshToken":"Y","expiresIn":"3600"}`

	c := newTestClient(t, srv, ScopeSpeech)
	assert.Equal(t, "X", c.AccessToken())
	assert.Equal(t, "Y", c.RefreshToken())

	tok := c.Token()
	assert.Equal(t, "Bearer", tok.Type())
	assert.Equal(t, "3600", tok.Extra("expires_in"))

	tok.AccessToken = "changed"
	assert.Equal(t, "X", c.AccessToken(), "Token returns a copy")
}

func TestNewClient_AuthenticationError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"ServiceError", `{"error":"invalid_client"}`, "invalid_client"},
		{"WithDescription", `{"error":"invalid_scope","error_description":"scope TTS not allowed"}`, "invalid_scope: scope TTS not allowed"},
		{"NullAccessToken", `{"access_token":null,"refresh_token":"B","error":"invalid_client"}`, "invalid_client"},
		{"MissingRefreshToken", `{"access_token":"A"}`, "no access_token or refresh_token"},
		{"ObjectError", `{"error":{"code":"E1"}}`, `{"code":"E1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, srv := startFake(t)
			fake.tokenBody = tt.body

			c, err := NewClient(context.Background(), "key", "secret", ScopeSpeech, WithBaseURL(srv.URL), quiet())
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrAuthentication)
			assert.NotErrorIs(t, err, ErrTransport)
			assert.Contains(t, err.Error(), tt.want)

			e, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, "token", e.Op)
			assert.Equal(t, http.StatusOK, e.StatusCode)
		})
	}
}

func TestNewClient_MalformedTokenResponse(t *testing.T) {
	fake, srv := startFake(t)
	fake.tokenBody = `<html>gateway timeout</html>`

	_, err := NewClient(context.Background(), "key", "secret", ScopeSpeech, WithBaseURL(srv.URL), quiet())
	require.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNewClient_TransportError(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("network is down")
	})}

	_, err := NewClient(context.Background(), "key", "secret", ScopeSpeech,
		WithBaseURL("http://att.invalid"), WithHTTPClient(client), quiet())
	require.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "network is down")
	assert.Contains(t, err.Error(), "att: token: transport error")
}

func TestNewClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(context.Background(), "key", "secret", ScopeSpeech, WithBaseURL(base), quiet())
	require.ErrorIs(t, err, ErrTransport)

	e, ok := AsError(err)
	require.True(t, ok)
	require.NotNil(t, e.Err)
	assert.Contains(t, err.Error(), e.Err.Error())
}

func TestNewClient_ContextCanceled(t *testing.T) {
	_, srv := startFake(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ctx, "key", "secret", ScopeSpeech, WithBaseURL(srv.URL), quiet())
	require.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_TLS(t *testing.T) {
	fake := newFakeService()
	srv := httptest.NewTLSServer(fake.handler())
	t.Cleanup(srv.Close)

	_, err := NewClient(context.Background(), "key", "secret", ScopeSpeech, WithBaseURL(srv.URL), quiet())
	require.ErrorIs(t, err, ErrTransport, "self-signed certificate must be rejected")

	c, err := NewClient(context.Background(), "key", "secret", ScopeSpeech,
		WithBaseURL(srv.URL), WithInsecureSkipVerify(true), quiet())
	require.NoError(t, err)
	assert.False(t, c.SSLVerify())
	assert.Equal(t, "A", c.AccessToken())
}

func TestClient_Accessors(t *testing.T) {
	_, srv := startFake(t)

	c, err := NewClientWithConfig(context.Background(), Config{
		APIKey:    "my-key",
		SecretKey: "my-secret",
		Scope:     ScopeTTS,
		BaseURL:   srv.URL + "/",
	}, quiet(), WithUserAgent("custom/2.0"))
	require.NoError(t, err)

	assert.Equal(t, "my-key", c.APIKey())
	assert.Equal(t, srv.URL, c.BaseURL())
	assert.True(t, c.SSLVerify())
	assert.Equal(t, ScopeTTS, c.Scope())
}

func TestClient_DefaultBaseURL(t *testing.T) {
	var gotURL string
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": {"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"access_token":"A","refresh_token":"B"}`)),
			Request:    r,
		}, nil
	})}

	c, err := NewClient(context.Background(), "key", "secret", ScopeSpeech, WithHTTPClient(client), quiet())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, "https://api.att.com/oauth/access_token", gotURL)
}

func TestScope_Valid(t *testing.T) {
	assert.True(t, ScopeSpeech.Valid())
	assert.True(t, ScopeTTS.Valid())
	assert.False(t, Scope("speech").Valid())
	assert.False(t, Scope("").Valid())
}
