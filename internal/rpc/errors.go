package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrEmptyEndpoint is returned when a call names no endpoint.
var ErrEmptyEndpoint = errors.New("rpc: endpoint is required")

// RemoteError is a non-2xx reply from the gateway. Its message is the reply
// body, which is what the node wrote as the failure description.
type RemoteError struct {
	Endpoint string
	Status   int
	Text     string
}

func (e *RemoteError) Error() string {
	if e.Text != "" {
		return e.Text
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, http.StatusText(e.Status))
}

// Temporary reports whether the gateway failed on its side and a later attempt may succeed.
func (e *RemoteError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError
}

// AsRemote unwraps err into a *RemoteError.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// retryable reports whether a failed attempt may be repeated: transport
// failures and 5xx replies. Rejections (4xx) and codec failures are final.
func retryable(err error) bool {
	if re, ok := AsRemote(err); ok {
		return re.Temporary()
	}
	var ce *codecError
	return !errors.As(err, &ce)
}

type codecError struct {
	op  string
	err error
}

func (e *codecError) Error() string { return e.op + ": " + e.err.Error() }
func (e *codecError) Unwrap() error { return e.err }

// IsGatewayError reports whether err came from talking to the gateway
// rather than from the caller's input: a remote rejection, an unreachable or
// timed out gateway, or a reply that does not decode.
func IsGatewayError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := AsRemote(err); ok {
		return true
	}
	var ce *codecError
	if errors.As(err, &ce) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
