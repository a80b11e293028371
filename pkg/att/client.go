package att

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the default AT&T API base URL.
	DefaultBaseURL = "https://api.att.com"

	// DefaultUserAgent is sent on every request unless overridden.
	DefaultUserAgent = "att-speech-go/1.0"

	// GrantType is the OAuth2 grant used for the token exchange.
	GrantType = "client_credentials"
)

// Scope selects the service a client is authorized for.
type Scope string

const (
	// ScopeSpeech authorizes speech-to-text.
	ScopeSpeech Scope = "SPEECH"

	// ScopeTTS authorizes text-to-speech.
	ScopeTTS Scope = "TTS"
)

var scopes = []Scope{ScopeSpeech, ScopeTTS}

// Valid reports whether s is SPEECH or TTS. The match is case-sensitive.
func (s Scope) Valid() bool {
	return lo.Contains(scopes, s)
}

// accept returns the Accept header every request of this scope starts with.
func (s Scope) accept() string {
	if s == ScopeTTS {
		return "audio/x-wav"
	}
	return "application/json"
}

// Config holds the client credentials and endpoint.
type Config struct {
	// APIKey is the application key (OAuth client_id).
	APIKey string `json:"api_key" yaml:"api_key"`

	// SecretKey is the application secret (OAuth client_secret).
	SecretKey string `json:"secret_key" yaml:"secret_key"`

	// Scope is SPEECH or TTS.
	Scope Scope `json:"scope" yaml:"scope"`

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// InsecureSkipVerify disables TLS certificate verification. Insecure.
	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// Validate reports every problem with c in a single configuration error.
func (c Config) Validate() error {
	var merr *multierror.Error

	if !c.Scope.Valid() {
		merr = multierror.Append(merr, fmt.Errorf("scope must be %s or %s, got %q", ScopeSpeech, ScopeTTS, c.Scope))
	}
	if c.APIKey == "" {
		merr = multierror.Append(merr, errors.New("api key is required"))
	}
	if c.SecretKey == "" {
		merr = multierror.Append(merr, errors.New("secret key is required"))
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			merr = multierror.Append(merr, fmt.Errorf("base url %q is not an absolute http(s) url", c.BaseURL))
		}
	}

	if merr == nil {
		return nil
	}
	merr.ErrorFormat = func(errs []error) string {
		return strings.Join(lo.Map(errs, func(err error, _ int) string { return err.Error() }), "; ")
	}
	return &Error{Kind: KindConfiguration, Op: "new", Err: merr}
}

// Client is the AT&T Speech API client.
//
// A Client is safe for concurrent use once NewClient has returned.
type Client struct {
	config *clientConfig
	http   *httpClient
	token  *oauth2.Token
}

// clientConfig holds the client configuration.
type clientConfig struct {
	Config

	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger

	statusErrors bool
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.BaseURL = url
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
//
// Only use this against test endpoints. It has no effect when a custom
// HTTP client is supplied with WithHTTPClient.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *clientConfig) {
		c.InsecureSkipVerify = skip
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets a per-request timeout. The default is no timeout beyond
// the request context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithStatusErrors makes SpeechToText and TextToSpeech return a transport
// error for non-2xx responses instead of the response body. The error
// carries the status code and the service's RequestError text.
func WithStatusErrors() Option {
	return func(c *clientConfig) {
		c.statusErrors = true
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// NewClient creates a client for scope and exchanges apiKey and secretKey
// for an access token before returning.
//
// Example:
//
//	client, err := att.NewClient(ctx, "api-key", "secret", att.ScopeSpeech)
//	client, err := att.NewClient(ctx, "api-key", "secret", att.ScopeTTS,
//	    att.WithBaseURL("https://api.att.com"),
//	    att.WithTimeout(30*time.Second))
func NewClient(ctx context.Context, apiKey, secretKey string, scope Scope, opts ...Option) (*Client, error) {
	return NewClientWithConfig(ctx, Config{
		APIKey:    apiKey,
		SecretKey: secretKey,
		Scope:     scope,
	}, opts...)
}

// NewClientWithConfig is NewClient taking a Config. Options are applied on
// top of cfg.
func NewClientWithConfig(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	cc := &clientConfig{
		Config:    cfg,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(cc)
	}
	cc.BaseURL = strings.TrimRight(lo.CoalesceOrEmpty(cc.BaseURL, DefaultBaseURL), "/")

	if err := cc.Config.Validate(); err != nil {
		return nil, err
	}

	if cc.logger == nil {
		cc.logger = slog.Default()
	}
	if cc.httpClient == nil {
		cc.httpClient = &http.Client{
			Timeout:   cc.timeout,
			Transport: newTransport(cc.InsecureSkipVerify),
		}
	}
	if cc.InsecureSkipVerify {
		cc.logger.Warn("att: TLS certificate verification is disabled, connections are insecure",
			"base_url", cc.BaseURL)
	}

	c := &Client{
		config: cc,
		http:   newHTTPClient(cc),
	}
	if err := c.exchangeToken(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func newTransport(insecure bool) http.RoundTripper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return t
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	return c.config.APIKey
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// SSLVerify reports whether TLS certificates are verified.
func (c *Client) SSLVerify() bool {
	return !c.config.InsecureSkipVerify
}

// Scope returns the client scope.
func (c *Client) Scope() Scope {
	return c.config.Scope
}

// AccessToken returns the bearer token obtained at construction.
func (c *Client) AccessToken() string {
	return c.token.AccessToken
}

// RefreshToken returns the refresh token obtained at construction.
func (c *Client) RefreshToken() string {
	return c.token.RefreshToken
}

// Token returns a copy of the token pair. Fields of the token response other
// than the tokens are available through Extra, with snake_case keys.
func (c *Client) Token() *oauth2.Token {
	t := *c.token
	return &t
}
