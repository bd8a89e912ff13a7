package transport

import (
	"errors"
	"fmt"
)

// ErrTimeout reports that no response arrived within the session deadline.
var ErrTimeout = errors.New("metadata request timed out")

// TransportError wraps a channel-level fault (dial failure, read error).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AbnormalClosureError reports that the peer closed the connection with a
// non-normal close code before a matching response arrived.
type AbnormalClosureError struct {
	Code int
	Text string
}

func (e *AbnormalClosureError) Error() string {
	return fmt.Sprintf("connection closed abnormally (code %d): %s", e.Code, e.Text)
}

// ProtocolError carries an RPC-level error object returned by the node.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("rpc error: %s", e.Message)
}

// MalformedResponseError reports a response body that did not parse as the
// expected JSON-RPC envelope.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
