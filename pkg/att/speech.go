package att

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/bryanrite/att-speech/pkg/jsontree"
)

const speechToTextPath = "/speech/v3/speechToText"

// Audio content types accepted by speechToText.
const (
	ContentTypeWAV         = "audio/wav"
	ContentTypeXWAV        = "audio/x-wav"
	ContentTypeAMR         = "audio/amr"
	ContentTypeAMRWB       = "audio/amr-wb"
	ContentTypeSpeex       = "audio/x-speex"
	ContentTypeOctetStream = "application/octet-stream"
)

// Speech contexts supported by the service.
const (
	SpeechContextGeneric           = "Generic"
	SpeechContextBusinessSearch    = "BusinessSearch"
	SpeechContextWebSearch         = "WebSearch"
	SpeechContextSMS               = "SMS"
	SpeechContextVoicemail         = "Voicemail"
	SpeechContextQuestionAndAnswer = "QuestionAndAnswer"
	SpeechContextTV                = "TV"
	SpeechContextGaming            = "Gaming"
)

// SpeechToTextRequest is a transcription request.
type SpeechToTextRequest struct {
	// Audio is the raw file content.
	Audio []byte

	// ContentType defaults to audio/wav. application/octet-stream is sent as
	// audio/amr.
	ContentType string

	// SpeechContext defaults to Generic.
	SpeechContext string

	// XArg is sent as the X-Arg header when set.
	XArg string

	// OnComplete, if set, is called with the result before SpeechToText
	// returns.
	OnComplete func(*jsontree.Object)
}

// SpeechToText transcribes audio. The JSON response is returned with its keys
// normalized to snake_case, whatever the HTTP status: a rejected request
// yields its request_error object. See WithStatusErrors.
func (c *Client) SpeechToText(ctx context.Context, req *SpeechToTextRequest) (*jsontree.Object, error) {
	const op = "speechToText"

	if req == nil {
		req = &SpeechToTextRequest{}
	}
	contentType := lo.CoalesceOrEmpty(req.ContentType, ContentTypeWAV)
	if contentType == ContentTypeOctetStream {
		contentType = ContentTypeAMR
	}
	speechContext := lo.CoalesceOrEmpty(req.SpeechContext, SpeechContextGeneric)

	resp, err := c.http.post(ctx, op, speechToTextPath, bytes.NewReader(req.Audio), func(r *http.Request) {
		c.token.SetAuthHeader(r)
		r.Header.Set("Content-Transfer-Encoding", "chunked")
		r.Header.Set("X-SpeechContext", speechContext)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("Accept", "application/json")
		if req.XArg != "" {
			r.Header.Set("X-Arg", req.XArg)
		}
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() && c.config.statusErrors {
		return nil, statusError(op, resp)
	}

	result, err := decodeJSON(op, resp)
	if err != nil {
		return nil, err
	}
	if req.OnComplete != nil {
		req.OnComplete(result)
	}
	return result, nil
}

// ContentTypeForFile returns the content type for an audio file extension,
// or "" when the extension is not known.
func ContentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return ContentTypeWAV
	case ".amr":
		return ContentTypeAMR
	case ".awb":
		return ContentTypeAMRWB
	case ".spx":
		return ContentTypeSpeex
	}
	return ""
}

// Recognition is a typed view of a speechToText result.
type Recognition struct {
	Status     string `json:"status"`
	ResponseID string `json:"response_id"`

	// Best is the first NBest entry, nil when the service returned none.
	Best *NBest `json:"-"`
}

// NBest is one recognition hypothesis.
type NBest struct {
	Hypothesis string    `json:"hypothesis"`
	LanguageID string    `json:"language_id"`
	Confidence float64   `json:"confidence"`
	Grade      string    `json:"grade"`
	ResultText string    `json:"result_text"`
	Words      []string  `json:"words"`
	WordScores []float64 `json:"word_scores"`
}

// ParseRecognition reads the "recognition" object of a normalized
// speechToText result. Only the first n_best entry is decoded, since later
// entries keep their original keys.
func ParseRecognition(result *jsontree.Object) (*Recognition, error) {
	v, ok := result.Get("recognition")
	if !ok {
		return nil, fmt.Errorf("att: result has no recognition")
	}
	obj, ok := v.(*jsontree.Object)
	if !ok {
		return nil, fmt.Errorf("att: recognition is not an object")
	}

	var rec Recognition
	if err := remarshal(obj, &rec); err != nil {
		return nil, fmt.Errorf("att: decode recognition: %w", err)
	}

	if first, ok := obj.Path("n_best", "0"); ok {
		if _, isObj := first.(*jsontree.Object); isObj {
			var best NBest
			if err := remarshal(first, &best); err != nil {
				return nil, fmt.Errorf("att: decode n_best: %w", err)
			}
			rec.Best = &best
		}
	}
	return &rec, nil
}

func remarshal(v jsontree.Value, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
