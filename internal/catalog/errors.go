package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies a catalog request failure.
type Kind int

const (
	// KindInvalidRequest means the request URL could not be built.
	// Defensive only: a well-formed base URL never triggers it.
	KindInvalidRequest Kind = iota + 1
	// KindTransport means no response arrived (connectivity).
	KindTransport
	// KindHTTPStatus means the server answered outside 2xx.
	KindHTTPStatus
	// KindDecode means the response body did not match the schema.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by the catalog client.
// Status is set only for KindHTTPStatus.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("catalog: unexpected status %d", e.Status)
	default:
		return fmt.Sprintf("catalog: %s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func invalidRequestErr(err error) *Error {
	return &Error{Kind: KindInvalidRequest, Err: err}
}

func transportErr(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

func httpStatusErr(status int) *Error {
	return &Error{Kind: KindHTTPStatus, Status: status}
}

func decodeErr(err error) *Error {
	return &Error{Kind: KindDecode, Err: err}
}

// UserMessage maps any search failure to a user-facing message.
// Unknown errors get a generic fallback so the UI never shows raw
// error chains.
func UserMessage(err error) string {
	var cerr *Error
	if !errors.As(err, &cerr) {
		return "An unexpected error occurred. Please try again."
	}

	switch cerr.Kind {
	case KindInvalidRequest:
		return "The server address looks wrong. Please try again later."
	case KindTransport:
		return "We did not get a response from the server. Check your connection and try again."
	case KindDecode:
		return "We could not read the server response. Please try again later."
	case KindHTTPStatus:
		return statusMessage(cerr.Status)
	default:
		return "An unexpected error occurred. Please try again."
	}
}

func statusMessage(status int) string {
	switch {
	case status == 400:
		return "There was a problem with your request. Please check it and retry."
	case status == 401 || status == 403:
		return "You are not allowed to perform this action. Check your session."
	case status == 404:
		return "We could not find the requested resource."
	case status >= 500 && status <= 599:
		return "Something went wrong on the server. Please try again later."
	default:
		return fmt.Sprintf("An unexpected error occurred (code %d). Please try again.", status)
	}
}
