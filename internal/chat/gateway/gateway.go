// Package gateway accepts websocket connections, authenticates them and
// turns inbound frames into calls on the chat core.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"famchat/internal/chat/event"
	"famchat/internal/chat/hub"
	"famchat/internal/chat/service"
	"famchat/internal/common"
	"famchat/internal/config"
	"famchat/internal/metrics"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

var ErrShuttingDown = errors.New("gateway shutting down")

// Membership is the part of the room index the gateway drives.
type Membership interface {
	Subscribe(s hub.Subscriber, roomID uint64)
	Unsubscribe(s hub.Subscriber)
}

// Presence records which users have at least one open session.
type Presence interface {
	MarkOnline(ctx context.Context, userID uint64) error
	Touch(ctx context.Context, userID uint64) error
	MarkOffline(ctx context.Context, userID uint64) error
}

type Stats struct {
	Sessions int `json:"sessions"`
	Users    int `json:"users"`
}

type handlerFunc func(s *Session, data json.RawMessage) error

type Gateway struct {
	router   service.BroadcastRouter
	reads    service.ReadTracker
	rooms    Membership
	tokens   common.TokenValidator
	presence Presence
	cfg      config.GatewayConfig
	log      *zap.Logger

	upgrader websocket.Upgrader
	handlers map[event.Kind]handlerFunc

	users    *userLocks
	mu       sync.Mutex
	sessions map[string]*Session
	perUser  map[uint64]int
	closing  bool
	writers  sync.WaitGroup
}

// NewGateway builds a gateway. presence may be nil.
func NewGateway(
	router service.BroadcastRouter,
	reads service.ReadTracker,
	rooms Membership,
	tokens common.TokenValidator,
	presence Presence,
	cfg config.GatewayConfig,
	log *zap.Logger,
) *Gateway {
	g := &Gateway{
		router:   router,
		reads:    reads,
		rooms:    rooms,
		tokens:   tokens,
		presence: presence,
		cfg:      cfg,
		log:      log.Named("gateway"),
		users:    newUserLocks(),
		sessions: make(map[string]*Session),
		perUser:  make(map[uint64]int),
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}
	g.handlers = map[event.Kind]handlerFunc{
		event.JoinRoom:     g.handleJoinRoom,
		event.SendMessage:  g.handleSendMessage,
		event.SendReaction: g.handleSendReaction,
		event.MarkRead:     g.handleMarkRead,
	}
	return g
}

// ServeWS authenticates the request, upgrades it and runs the session
// until the client goes away.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := common.TokenFromRequest(r)
	if token == "" {
		common.WriteError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	claims, err := g.tokens.ValidToken(token)
	if err != nil {
		common.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	g.mu.Lock()
	closing := g.closing
	g.mu.Unlock()
	if closing {
		common.WriteError(w, http.StatusServiceUnavailable, "server is shutting down")
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already wrote the response
		g.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := newSession(conn, claims.UserID, claims.Handle, g.cfg.SendBuffer, g.newLimiter())
	if err := g.register(sess); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}

	go g.writePump(sess)
	g.readPump(sess)
	g.unregister(sess)
}

func (g *Gateway) newLimiter() *rate.Limiter {
	if g.cfg.InboundRatePerSec <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := g.cfg.InboundBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(g.cfg.InboundRatePerSec), burst)
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(g.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range g.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	g.log.Warn("rejected websocket origin", zap.String("origin", origin))
	return false
}

// register adds the session and accounts for its writer. On success the
// caller must start writePump.
func (g *Gateway) register(s *Session) error {
	unlock := g.users.lock(s.userID)
	defer unlock()

	g.mu.Lock()
	if g.closing {
		g.mu.Unlock()
		return ErrShuttingDown
	}
	g.sessions[s.id] = s
	g.perUser[s.userID]++
	first := g.perUser[s.userID] == 1
	g.writers.Add(1)
	g.mu.Unlock()

	metrics.ActiveSessions.Inc()
	g.log.Info("session opened",
		zap.String("session_id", s.id),
		zap.Uint64("user_id", s.userID),
		zap.String("handle", common.HandleFromContext(s.ctx)))
	if first {
		g.updatePresence(s, "online")
	}
	return nil
}

// unregister releases everything the session holds. Called once, from
// ServeWS, after the read loop exits.
func (g *Gateway) unregister(s *Session) {
	g.rooms.Unsubscribe(s)
	s.Close()

	unlock := g.users.lock(s.userID)
	defer unlock()

	g.mu.Lock()
	delete(g.sessions, s.id)
	g.perUser[s.userID]--
	last := g.perUser[s.userID] <= 0
	if last {
		delete(g.perUser, s.userID)
	}
	g.mu.Unlock()

	metrics.ActiveSessions.Dec()
	g.log.Info("session closed", zap.String("session_id", s.id), zap.Uint64("user_id", s.userID))
	if last {
		g.updatePresence(s, "offline")
	}
}

func (g *Gateway) updatePresence(s *Session, state string) {
	if g.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	switch state {
	case "online":
		err = g.presence.MarkOnline(ctx, s.userID)
	case "offline":
		err = g.presence.MarkOffline(ctx, s.userID)
	default:
		err = g.presence.Touch(ctx, s.userID)
	}
	if err != nil {
		g.log.Warn("presence update failed",
			zap.String("state", state),
			zap.Uint64("user_id", s.userID),
			zap.Error(err))
	}
}

// touch refreshes presence at most a few times per TTL window.
func (g *Gateway) touch(s *Session) {
	if g.presence == nil {
		return
	}
	now := time.Now()
	if now.Sub(s.lastTouch) < 15*time.Second {
		return
	}
	s.lastTouch = now
	g.updatePresence(s, "touch")
}

// Stats reports open sessions and distinct connected users.
func (g *Gateway) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{Sessions: len(g.sessions), Users: len(g.perUser)}
}

// Shutdown refuses new connections, closes every session and waits for
// their writers to finish.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	g.closing = true
	open := make([]*Session, 0, len(g.sessions))
	for _, s := range g.sessions {
		open = append(open, s)
	}
	g.mu.Unlock()

	for _, s := range open {
		s.Close()
	}

	done := make(chan struct{})
	go func() {
		g.writers.Wait()
		close(done)
	}()

	select {
	case <-done:
		g.log.Info("gateway shutdown complete", zap.Int("sessions", len(open)))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
