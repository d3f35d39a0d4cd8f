package ports

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks a call that never produced an HTTP response.
	ErrTransport = errors.New("transport failure")

	// ErrUnexpectedStatus marks a response outside the accepted status codes.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// RemoteError is returned by outbound HTTP adapters. It unwraps to ErrTransport
// or ErrUnexpectedStatus and, when present, to the underlying cause.
type RemoteError struct {
	Op         string
	StatusCode int
	Detail     string
	Kind       error
	Cause      error
}

func NewTransportError(op string, cause error) *RemoteError {
	return &RemoteError{Op: op, Kind: ErrTransport, Cause: cause}
}

func NewUnexpectedStatusError(op string, statusCode int, detail string) *RemoteError {
	return &RemoteError{Op: op, StatusCode: statusCode, Detail: detail, Kind: ErrUnexpectedStatus}
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		if e.Detail != "" {
			return fmt.Sprintf("%s: %v %d: %s", e.Op, e.Kind, e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("%s: %v %d", e.Op, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Cause)
}

func (e *RemoteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.StatusCode
	}
	return 0
}
