// Package att provides a Go client for the AT&T Speech API.
//
// A Client is bound to one scope. SPEECH clients transcribe audio, TTS
// clients synthesize audio from text. Creating a client performs the OAuth2
// client-credentials exchange against /oauth/access_token; the resulting
// access token is sent as a bearer credential on every later call. Tokens are
// not refreshed: when one expires, create a new Client.
//
// # Speech to Text
//
//	client, err := att.NewClient(ctx, apiKey, secretKey, att.ScopeSpeech)
//	if err != nil {
//	    return err
//	}
//	result, err := client.SpeechToText(ctx, &att.SpeechToTextRequest{
//	    Audio:         wav,
//	    SpeechContext: "Generic",
//	})
//	hypothesis, _ := result.Path("recognition", "n_best", "0", "hypothesis")
//
// Response objects are normalized to snake_case keys (see package jsontree).
// Only the first element of an array is normalized.
//
// # Text to Speech
//
//	client, err := att.NewClient(ctx, apiKey, secretKey, att.ScopeTTS)
//	audio, err := client.TextToSpeech(ctx, &att.TextToSpeechRequest{
//	    Text: "Hello world",
//	    XArg: "VoiceName=crystal",
//	})
//
// Both calls return the response body whatever the HTTP status, so a
// rejected speechToText request yields its request_error object and a
// rejected textToSpeech request yields the error body bytes. With
// WithStatusErrors, non-2xx responses become transport errors instead.
//
// # Error Handling
//
//	if errors.Is(err, att.ErrAuthentication) {
//	    // bad credentials
//	}
//	if e, ok := att.AsError(err); ok && e.IsTransport() {
//	    // network failure or malformed JSON; with WithStatusErrors also
//	    // a non-2xx status
//	}
//
// Construction validates more than the scope. An empty API key, an empty
// secret key, or a base URL that is not an absolute http(s) URL is
// rejected with a configuration error before any request is sent, where a
// client checking only the scope would reach the service and fail with an
// authentication error.
//
// # Configuration
//
//	client, err := att.NewClientWithConfig(ctx, att.Config{
//	    APIKey:    apiKey,
//	    SecretKey: secretKey,
//	    Scope:     att.ScopeSpeech,
//	    BaseURL:   "https://api.att.com",
//	}, att.WithTimeout(30*time.Second))
package att
