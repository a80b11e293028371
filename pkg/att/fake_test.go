package att

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// fakeService emulates the AT&T endpoints and records what it receives.
type fakeService struct {
	mu       sync.Mutex
	requests map[string][]recorded

	tokenBody string
	sttStatus int
	sttBody   string
	ttsStatus int
	ttsBody   []byte
}

type recorded struct {
	header http.Header
	form   url.Values
	body   []byte
}

func newFakeService() *fakeService {
	return &fakeService{
		requests:  make(map[string][]recorded),
		tokenBody: `{"access_token":"A","refresh_token":"B","expires_in":"0"}`,
		sttStatus: http.StatusOK,
		sttBody:   `{"Recognition":{"Status":"OK","ResponseId":"r-1","NBest":[{"Hypothesis":"hello world","LanguageId":"en-US","Confidence":0.9,"Grade":"accept","ResultText":"Hello world.","Words":["Hello","world."],"WordScores":[0.8,0.95]},{"Hypothesis":"yellow world","ResultText":"Yellow world."}]}}`,
		ttsStatus: http.StatusOK,
		ttsBody:   []byte("RIFF\x00\x01\x02\x03WAVEfmt "),
	}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+tokenPath, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.record(tokenPath, r, nil)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, f.tokenBody)
	})
	mux.HandleFunc("POST "+speechToTextPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.record(speechToTextPath, r, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.sttStatus)
		io.WriteString(w, f.sttBody)
	})
	mux.HandleFunc("POST "+textToSpeechPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.record(textToSpeechPath, r, body)
		w.Header().Set("Content-Type", "audio/x-wav")
		w.WriteHeader(f.ttsStatus)
		w.Write(f.ttsBody)
	})
	return mux
}

func (f *fakeService) record(path string, r *http.Request, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[path] = append(f.requests[path], recorded{
		header: r.Header.Clone(),
		form:   r.PostForm,
		body:   body,
	})
}

func (f *fakeService) last(t *testing.T, path string) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	reqs := f.requests[path]
	if len(reqs) == 0 {
		t.Fatalf("no request to %s", path)
	}
	return reqs[len(reqs)-1]
}

func (f *fakeService) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests[path])
}

func startFake(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	f := newFakeService()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, srv
}

func quiet() Option {
	return WithLogger(slog.New(slog.DiscardHandler))
}

func newTestClient(t *testing.T, srv *httptest.Server, scope Scope, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(srv.URL), quiet()}, opts...)
	c, err := NewClient(context.Background(), "key", "secret", scope, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}
