package att

import (
	"context"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

const textToSpeechPath = "/speech/v3/textToSpeech"

// Text and audio content types for textToSpeech.
const (
	ContentTypeText = "text/plain"
	ContentTypeSSML = "application/ssml+xml"
)

// TextToSpeechRequest is a synthesis request.
type TextToSpeechRequest struct {
	// Text is plain text or SSML.
	Text string `json:"text" yaml:"text"`

	// ContentType defaults to text/plain.
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`

	// Accept selects the audio format, default audio/x-wav.
	Accept string `json:"accept,omitempty" yaml:"accept,omitempty"`

	// XArg is sent as the X-Arg header when set, e.g. "VoiceName=crystal".
	XArg string `json:"x_arg,omitempty" yaml:"x_arg,omitempty"`

	// Headers are applied last and win over every header above.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// TextToSpeech synthesizes speech and returns the response body unmodified,
// whatever the HTTP status. See WithStatusErrors.
func (c *Client) TextToSpeech(ctx context.Context, req *TextToSpeechRequest) ([]byte, error) {
	const op = "textToSpeech"

	if req == nil {
		req = &TextToSpeechRequest{}
	}

	resp, err := c.http.post(ctx, op, textToSpeechPath, strings.NewReader(req.Text), func(r *http.Request) {
		c.token.SetAuthHeader(r)
		r.Header.Set("Content-Type", lo.CoalesceOrEmpty(req.ContentType, ContentTypeText))
		r.Header.Set("Accept", lo.CoalesceOrEmpty(req.Accept, ContentTypeXWAV))
		if req.XArg != "" {
			r.Header.Set("X-Arg", req.XArg)
		}
		for k, v := range req.Headers {
			r.Header.Set(k, v)
		}
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() && c.config.statusErrors {
		return nil, statusError(op, resp)
	}
	return resp.body, nil
}
