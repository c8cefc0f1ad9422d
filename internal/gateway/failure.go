package gateway

import (
	"fmt"
	"unicode/utf8"
)

const maxBodyExcerpt = 512

type FailureKind int

const (
	// FailureConfiguration: no base address, or a request that cannot be built from it.
	FailureConfiguration FailureKind = iota + 1
	// FailureTransport: connection, DNS or read errors, including context cancellation.
	FailureTransport
	// FailureProtocol: any status other than 200.
	FailureProtocol
	// FailureDecoding: a 200 whose body is not the expected JSON.
	FailureDecoding
)

func (k FailureKind) String() string {
	switch k {
	case FailureConfiguration:
		return "configuration"
	case FailureTransport:
		return "transport"
	case FailureProtocol:
		return "protocol"
	case FailureDecoding:
		return "decoding"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is the reason a fetch came back empty.
type Failure struct {
	Kind       FailureKind
	Path       string
	StatusCode int
	Body       string
	Cause      error
}

func (f *Failure) Error() string {
	if f.Kind == FailureProtocol {
		return fmt.Sprintf("fetch %s: HTTP status %d", f.Path, f.StatusCode)
	}

	return fmt.Sprintf("fetch %s: %s error: %v", f.Path, f.Kind, f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Result carries the decoded collection or, when Failure is set, an empty one.
type Result[C any] struct {
	Items   C
	Failure *Failure
}

func (r Result[C]) Failed() bool {
	return r.Failure != nil
}

func (r Result[C]) Err() error {
	if r.Failure == nil {
		return nil
	}

	return r.Failure
}

func excerpt(body []byte) string {
	if len(body) <= maxBodyExcerpt {
		return string(body)
	}

	cut := maxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}

	return string(body[:cut]) + "..."
}
