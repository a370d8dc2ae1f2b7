package gateway

import (
	"time"

	"famchat/internal/metrics"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// readPump reads frames until the connection fails or the session is
// closed. It is the only reader of s.conn.
func (g *Gateway) readPump(s *Session) {
	conn := s.conn
	if g.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(g.cfg.MaxMessageBytes)
	}
	_ = conn.SetReadDeadline(time.Now().Add(g.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(g.cfg.PongWait))
	})

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) && !s.isClosed() {
				g.log.Debug("websocket read failed", zap.String("session_id", s.id), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(g.cfg.PongWait))
		if msgType != websocket.TextMessage {
			continue
		}

		if !s.limiter.Allow() {
			metrics.InboundEvents.WithLabelValues("any", "rate_limited").Inc()
			g.log.Warn("inbound event rate limited",
				zap.String("session_id", s.id),
				zap.Uint64("user_id", s.userID))
			continue
		}

		g.dispatch(s, frame)
		g.touch(s)
	}
}

// writePump drains the send queue and keeps the connection alive with
// pings. It owns closing the connection.
func (g *Gateway) writePump(s *Session) {
	ticker := time.NewTicker(g.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
		g.writers.Done()
	}()

	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(g.cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				g.log.Debug("websocket write failed", zap.String("session_id", s.id), zap.Error(err))
				s.Close()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(g.cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}

		case <-s.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(g.cfg.WriteWait))
			return
		}
	}
}
