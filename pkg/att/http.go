package att

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bryanrite/att-speech/pkg/jsontree"
)

// httpClient handles HTTP communication with the AT&T API.
type httpClient struct {
	client    *http.Client
	baseURL   string
	accept    string
	userAgent string
	logger    *slog.Logger
}

// newHTTPClient creates a new HTTP client. The Accept header is fixed by the
// client scope.
func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:    cfg.httpClient,
		baseURL:   cfg.BaseURL,
		accept:    cfg.Scope.accept(),
		userAgent: cfg.userAgent,
		logger:    cfg.logger,
	}
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// post sends a POST request to path and reads the whole response body.
//
// The scope Accept header and the User-Agent are set first; setHeaders runs
// afterwards and may replace them.
func (h *httpClient) post(ctx context.Context, op, path string, body io.Reader, setHeaders func(*http.Request)) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, body)
	if err != nil {
		return nil, transportError(op, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Accept", h.accept)
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	if setHeaders != nil {
		setHeaders(req)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	h.logger.DebugContext(ctx, "att: request done",
		"op", op,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(start))

	return &response{status: resp.StatusCode, body: data}, nil
}

// decodeJSON parses and normalizes a JSON object body.
func decodeJSON(op string, resp *response) (*jsontree.Object, error) {
	obj, err := jsontree.DecodeObject(resp.body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, StatusCode: resp.status, Err: fmt.Errorf("decode response: %w", err)}
	}
	return jsontree.Underscore(obj).(*jsontree.Object), nil
}

// statusError builds the error for a non-2xx response. AT&T error bodies look
// like {"RequestError":{"ServiceException":{"MessageId":"SVC0001","Text":"..."}}}.
func statusError(op string, resp *response) *Error {
	msg := fmt.Sprintf("unexpected status %d", resp.status)
	if text := serviceErrorText(resp.body); text != "" {
		msg += ": " + text
	}
	return &Error{
		Kind:       KindTransport,
		Op:         op,
		StatusCode: resp.status,
		Message:    msg,
	}
}

func serviceErrorText(body []byte) string {
	if obj, err := jsontree.DecodeObject(body); err == nil {
		obj = jsontree.Underscore(obj).(*jsontree.Object)
		for _, exception := range []string{"service_exception", "policy_exception"} {
			ex, ok := obj.Path("request_error", exception)
			if !ok {
				continue
			}
			if exObj, ok := ex.(*jsontree.Object); ok {
				text := exObj.String("text")
				if vars := exObj.String("variables"); vars != "" {
					text = strings.ReplaceAll(text, "%1", vars)
				}
				return strings.TrimSpace(exObj.String("message_id") + " " + text)
			}
		}
	}

	return truncate(strings.TrimSpace(string(body)), maxErrorText)
}

// maxErrorText caps how much of a non-RequestError body goes into an error.
const maxErrorText = 256

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
