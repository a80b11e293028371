package att

import (
	"errors"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	// KindConfiguration is an invalid client configuration.
	KindConfiguration Kind = iota + 1

	// KindAuthentication is a token response without tokens.
	KindAuthentication

	// KindTransport is a failed HTTP exchange: connection, TLS, timeout,
	// non-2xx status or an unparsable body.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindAuthentication:
		return "authentication failed"
	case KindTransport:
		return "transport error"
	}
	return "error"
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrConfiguration  = errors.New("att: configuration error")
	ErrAuthentication = errors.New("att: authentication failed")
	ErrTransport      = errors.New("att: transport error")
)

// Error is returned by every operation of this package.
type Error struct {
	// Kind is the error class.
	Kind Kind

	// Op is the failing operation: "new", "token", "speechToText" or
	// "textToSpeech".
	Op string

	// Message is the service-reported detail, if any.
	Message string

	// StatusCode is the HTTP status, when a response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("att: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// IsConfiguration returns true for configuration errors.
func (e *Error) IsConfiguration() bool {
	return e.Kind == KindConfiguration
}

// IsAuthentication returns true when the token exchange returned no tokens.
func (e *Error) IsAuthentication() bool {
	return e.Kind == KindAuthentication
}

// IsTransport returns true for HTTP-level and parse failures.
func (e *Error) IsTransport() bool {
	return e.Kind == KindTransport
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := att.AsError(err); ok {
//	    if e.IsAuthentication() {
//	        // check api key and secret
//	    }
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}
