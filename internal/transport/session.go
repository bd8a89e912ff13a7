package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// JSON-RPC method returning the hex-encoded runtime metadata blob.
	metadataMethod = "state_getMetadata"

	// Time allowed to write the request frame to the peer.
	writeWait = 10 * time.Second

	// Runtime metadata blobs run to a few megabytes of hex.
	maxMessageSize = 16 * 1024 * 1024
)

// requestID provides monotonically increasing request identifiers across
// all sessions in the process.
var requestID atomic.Int64

type rpcRequest struct {
	ID      int64         `json:"id"`
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	ID     int64     `json:"id"`
	Result string    `json:"result"`
	Error  *rpcError `json:"error"`
}

// Session performs a single metadata exchange against one endpoint. It opens
// a WebSocket connection, sends exactly one request, and settles with the raw
// hex payload or a failure. A Session is single-use.
type Session struct {
	endpoint string
	timeout  time.Duration
	dialer   *websocket.Dialer
	logger   *zap.Logger
}

// NewSession builds a session for the given endpoint and request deadline.
func NewSession(endpoint string, timeout time.Duration, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Session{
		endpoint: endpoint,
		timeout:  timeout,
		dialer:   websocket.DefaultDialer,
		logger:   logger,
	}
}

// Fetch dials the endpoint, issues one metadata request, and returns the
// hex-encoded payload. The connection is closed on every exit path.
func (s *Session) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	conn, _, err := s.dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("dial %s: %w", s.endpoint, ErrTimeout)
		}
		return "", &TransportError{Err: fmt.Errorf("dial %s: %w", s.endpoint, err)}
	}

	var closeOnce sync.Once
	closeConn := func() {
		closeOnce.Do(func() {
			conn.Close()
		})
	}
	defer closeConn()

	conn.SetReadLimit(maxMessageSize)

	id := requestID.Add(1)
	req := rpcRequest{
		ID:      id,
		JSONRPC: "2.0",
		Method:  metadataMethod,
		Params:  []interface{}{},
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(req); err != nil {
		return "", &TransportError{Err: fmt.Errorf("send request: %w", err)}
	}

	type settled struct {
		payload string
		err     error
	}
	done := make(chan settled, 1)

	go func() {
		payload, err := s.awaitResponse(conn, id)
		done <- settled{payload: payload, err: err}
	}()

	select {
	case <-ctx.Done():
		// Force-close to unblock the reader; the goroutine drains into the
		// buffered channel and exits.
		closeConn()
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ctx.Err()
		}
		return "", ErrTimeout
	case result := <-done:
		if result.err != nil {
			return "", result.err
		}
		s.logger.Debug("metadata fetched",
			zap.String("endpoint", s.endpoint),
			zap.Int("payload_bytes", len(result.payload)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return result.payload, nil
	}
}

// awaitResponse reads frames until the response matching id arrives. With a
// single request in flight there is no reordering hazard, but unrelated
// frames (e.g. server notices) are skipped rather than treated as errors.
func (s *Session) awaitResponse(conn *websocket.Conn, id int64) (string, error) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure {
					return "", &TransportError{Err: fmt.Errorf("connection closed before response")}
				}
				return "", &AbnormalClosureError{Code: closeErr.Code, Text: closeErr.Text}
			}
			return "", &TransportError{Err: err}
		}

		var resp rpcResponse
		if err := json.Unmarshal(message, &resp); err != nil {
			return "", &MalformedResponseError{Err: err}
		}
		if resp.ID != id {
			s.logger.Debug("skipping unmatched frame", zap.Int64("want", id), zap.Int64("got", resp.ID))
			continue
		}
		if resp.Error != nil {
			return "", &ProtocolError{Message: resp.Error.Message}
		}
		return resp.Result, nil
	}
}
