package gateway

import (
	"encoding/json"
	"fmt"

	"famchat/internal/chat/event"
	"famchat/internal/chat/service"
	"famchat/internal/common"
	"famchat/internal/metrics"

	"go.uber.org/zap"
)

// dispatch routes one inbound frame through the handler table. Failures
// are logged and the event is dropped; nothing is echoed to the client.
func (g *Gateway) dispatch(s *Session, frame []byte) {
	env, err := event.Decode(frame)
	if err != nil {
		metrics.InboundEvents.WithLabelValues("malformed", "rejected").Inc()
		g.log.Warn("dropping malformed frame", zap.String("session_id", s.id), zap.Error(err))
		return
	}

	handle, ok := g.handlers[env.Event]
	if !ok {
		metrics.InboundEvents.WithLabelValues("unknown", "rejected").Inc()
		g.log.Warn("dropping unknown event",
			zap.String("session_id", s.id),
			zap.String("event", string(env.Event)))
		return
	}

	err = handle(s, env.Data)
	fields := []zap.Field{
		zap.String("event", string(env.Event)),
		zap.String("session_id", s.id),
		zap.Uint64("user_id", s.userID),
	}
	switch {
	case err == nil:
		metrics.InboundEvents.WithLabelValues(string(env.Event), "ok").Inc()
	case common.IsClientError(err):
		metrics.InboundEvents.WithLabelValues(string(env.Event), "rejected").Inc()
		g.log.Warn("event rejected", append(fields, zap.Error(err))...)
	default:
		metrics.InboundEvents.WithLabelValues(string(env.Event), "error").Inc()
		g.log.Error("event failed", append(fields, zap.Error(err))...)
	}
}

func decodePayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return common.Invalidf("missing event data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return common.Invalidf("decode payload: %v", err)
	}
	return nil
}

// checkActor rejects payloads that claim to come from another user. An
// omitted userId is fine; the socket identity is authoritative.
func checkActor(s *Session, claimed uint64) error {
	if claimed != 0 && claimed != s.userID {
		return fmt.Errorf("%w: payload user %d does not match session user %d",
			common.ErrForbidden, claimed, s.userID)
	}
	return nil
}

// handleJoinRoom subscribes the session to a room. Clients send it again
// after every reconnect since the server keeps no subscription state.
func (g *Gateway) handleJoinRoom(s *Session, data json.RawMessage) error {
	var p event.JoinRoomPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	if err := g.router.CheckAccess(s.ctx, s.userID, p.RoomID); err != nil {
		return err
	}
	g.rooms.Subscribe(s, p.RoomID)
	g.log.Debug("session joined room",
		zap.String("session_id", s.id),
		zap.Uint64("room_id", p.RoomID))
	return nil
}

func (g *Gateway) handleSendMessage(s *Session, data json.RawMessage) error {
	var p event.SendMessagePayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	if err := checkActor(s, p.UserID); err != nil {
		return err
	}
	_, err := g.router.SendMessage(s.ctx, s.userID, service.SendMessageInput{
		RoomID:        p.RoomID,
		Content:       p.Content,
		Kind:          p.Type,
		AttachmentURL: p.AttachmentURL,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		ReplyToID:     p.ReplyToID,
		IsForwarded:   p.IsForwarded,
	})
	return err
}

func (g *Gateway) handleSendReaction(s *Session, data json.RawMessage) error {
	var p event.SendReactionPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	if err := checkActor(s, p.UserID); err != nil {
		return err
	}
	_, err := g.router.SendReaction(s.ctx, s.userID, service.SendReactionInput{
		RoomID:    p.RoomID,
		MessageID: p.MessageID,
		Kind:      p.Type,
	})
	return err
}

func (g *Gateway) handleMarkRead(s *Session, data json.RawMessage) error {
	var p event.MarkReadPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	if err := checkActor(s, p.UserID); err != nil {
		return err
	}
	_, err := g.reads.MarkRead(s.ctx, s.userID, service.MarkReadInput{
		RoomID:    p.RoomID,
		MessageID: p.MessageID,
	})
	return err
}
