package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sessionWriteTimeout = 10 * time.Second

// Session is a long-lived handle to one platform's automation endpoint,
// created once at process startup and reused across cycles. The websocket
// is dialed lazily and redialed after a transport failure. Command exchange
// is serialized with a mutex so concurrent jobs cannot interleave frames;
// job-level overlap on the handle (the unlocked forced-report job racing a
// locked job) remains possible and is an accepted overlap window.
type Session struct {
	endpoint string
	logger   *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
	seq  uint64
}

// NewSession returns an unconnected session for the endpoint.
func NewSession(endpoint string, logger *zap.Logger) *Session {
	return &Session{endpoint: endpoint, logger: logger}
}

type sessionCommand struct {
	ID     uint64      `json:"id"`
	Op     string      `json:"op"`
	Params interface{} `json:"params,omitempty"`
}

type sessionResult struct {
	ID     uint64          `json:"id"`
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Call sends a named operation and waits for its result. A transport error
// drops the connection so the next call redials.
func (s *Session) Call(ctx context.Context, op string, params interface{}) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", s.endpoint, err)
		}
		s.conn = conn
		s.logger.Info("automation session connected", zap.String("endpoint", s.endpoint))
	}

	s.seq++
	cmd := sessionCommand{ID: s.seq, Op: op, Params: params}

	if deadline, ok := ctx.Deadline(); ok {
		_ = s.conn.SetWriteDeadline(deadline)
		_ = s.conn.SetReadDeadline(deadline)
	} else {
		_ = s.conn.SetWriteDeadline(time.Now().Add(sessionWriteTimeout))
		_ = s.conn.SetReadDeadline(time.Time{})
	}

	if err := s.conn.WriteJSON(cmd); err != nil {
		s.drop()
		return nil, fmt.Errorf("write %s: %w", op, err)
	}

	var res sessionResult
	for {
		if err := s.conn.ReadJSON(&res); err != nil {
			s.drop()
			return nil, fmt.Errorf("read %s: %w", op, err)
		}
		if res.ID == cmd.ID {
			break
		}
		// Stale reply from an earlier timed-out call.
		s.logger.Debug("discarding stale session reply", zap.Uint64("id", res.ID))
	}

	if res.Error != "" {
		return nil, fmt.Errorf("%s: %s", op, res.Error)
	}
	return res.Result, nil
}

func (s *Session) drop() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}

// Close tears the connection down.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop()
}
