package gateway

import (
	"context"
	"sync"
	"time"

	"famchat/internal/chat/hub"
	"famchat/internal/common"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Session is one websocket connection bound to an authenticated user.
// Outbound frames are queued on send and written by a single writer
// goroutine, so per-session order equals enqueue order.
type Session struct {
	id      string
	userID  uint64
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool

	// only touched by the read goroutine
	lastTouch time.Time
}

var _ hub.Subscriber = (*Session)(nil)

func newSession(conn *websocket.Conn, userID uint64, handle string, buffer int, limiter *rate.Limiter) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:      uuid.NewString(),
		userID:  userID,
		conn:    conn,
		send:    make(chan []byte, buffer),
		limiter: limiter,
		ctx:     common.WithIdentity(ctx, userID, handle),
		cancel:  cancel,
	}
}

func (s *Session) ID() string     { return s.id }
func (s *Session) UserID() uint64 { return s.userID }

// Send queues frame without blocking.
func (s *Session) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return hub.ErrSessionClosed
	}
	select {
	case s.send <- frame:
		return nil
	default:
		return hub.ErrSlowConsumer
	}
}

// Close stops the writer, which then closes the connection. Safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}
