package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"famchat/internal/chat/event"
	"famchat/internal/chat/hub"
	"famchat/internal/chat/view"
	"famchat/internal/common"
	"famchat/internal/dbmysql"
	"famchat/internal/metrics"

	"go.uber.org/zap"
)

const maxContentBytes = 16 << 10

// SendMessage persists a message and broadcasts receive_message to the
// room. Nothing is broadcast when persisting or re-reading fails.
func (s *ChatService) SendMessage(ctx context.Context, actorID uint64, in SendMessageInput) (*view.Message, error) {
	if actorID == 0 {
		return nil, common.ErrUnauthorized
	}
	msg, err := buildMessage(actorID, in)
	if err != nil {
		return nil, err
	}
	if err := s.CheckAccess(ctx, actorID, in.RoomID); err != nil {
		return nil, err
	}

	// persist, re-read and enqueue under the room lock so every session
	// sees messages in store order
	unlock := s.locks.lock(in.RoomID)
	out, recipients, err := s.persistAndBroadcast(ctx, msg)
	unlock()
	if err != nil {
		return nil, err
	}

	s.emit(common.ChatEvent{
		Type:       common.MessageCreatedEvent,
		RoomID:     out.RoomID,
		ActorID:    actorID,
		MessageID:  out.ID,
		Recipients: recipients,
		OccurredAt: time.Now().UTC(),
		Payload:    out,
	})
	return out, nil
}

func (s *ChatService) persistAndBroadcast(ctx context.Context, msg *dbmysql.Message) (*view.Message, int, error) {
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, 0, err
	}
	mc, err := s.repo.FetchMessageWithContext(ctx, msg.ID)
	if err != nil {
		s.log.Error("message stored but could not be re-read",
			zap.Uint64("message_id", msg.ID),
			zap.Uint64("room_id", msg.RoomID),
			zap.Error(err))
		return nil, 0, err
	}
	out := view.FromContext(mc)
	recipients, err := s.broadcast(msg.RoomID, event.ReceiveMessage, out)
	if err != nil {
		return nil, 0, err
	}
	return out, recipients, nil
}

// SendReaction stores a reaction (idempotently) and broadcasts the whole
// updated message as receive_reaction.
func (s *ChatService) SendReaction(ctx context.Context, actorID uint64, in SendReactionInput) (*view.Message, error) {
	if actorID == 0 {
		return nil, common.ErrUnauthorized
	}
	if in.RoomID == 0 || in.MessageID == 0 {
		return nil, common.Invalidf("room id and message id are required")
	}
	kind := strings.TrimSpace(in.Kind)
	if err := common.ValidateReactionKind(kind); err != nil {
		return nil, err
	}
	if err := s.CheckAccess(ctx, actorID, in.RoomID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(in.RoomID)
	out, recipients, err := s.reactAndBroadcast(ctx, actorID, in.RoomID, in.MessageID, kind)
	unlock()
	if err != nil {
		return nil, err
	}

	s.emit(common.ChatEvent{
		Type:       common.ReactionAddedEvent,
		RoomID:     in.RoomID,
		ActorID:    actorID,
		MessageID:  in.MessageID,
		Recipients: recipients,
		OccurredAt: time.Now().UTC(),
		Payload:    out,
		Metadata:   common.EventMetadata{"reaction": kind},
	})
	return out, nil
}

func (s *ChatService) reactAndBroadcast(ctx context.Context, actorID, roomID, messageID uint64, kind string) (*view.Message, int, error) {
	if err := s.repo.UpsertReaction(ctx, roomID, messageID, actorID, kind); err != nil {
		return nil, 0, err
	}
	mc, err := s.repo.FetchMessageWithContext(ctx, messageID)
	if err != nil {
		return nil, 0, err
	}
	out := view.FromContext(mc)
	recipients, err := s.broadcast(roomID, event.ReceiveReaction, out)
	if err != nil {
		return nil, 0, err
	}
	return out, recipients, nil
}

// broadcast enqueues one frame on every session of the room. Closed
// sessions are reaped; slow ones are closed so they reconnect and
// re-sync from history.
func (s *ChatService) broadcast(roomID uint64, kind event.Kind, payload interface{}) (int, error) {
	frame, err := event.Encode(kind, payload)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, sess := range s.fanout.SessionsFor(roomID) {
		err := sess.Send(frame)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, hub.ErrSlowConsumer):
			metrics.DeliveriesDropped.WithLabelValues("slow_consumer").Inc()
			s.log.Warn("closing slow session",
				zap.String("session_id", sess.ID()),
				zap.Uint64("user_id", sess.UserID()),
				zap.Uint64("room_id", roomID))
			s.fanout.Unsubscribe(sess)
			sess.Close()
		default:
			metrics.DeliveriesDropped.WithLabelValues("closed").Inc()
			s.fanout.Unsubscribe(sess)
		}
	}
	metrics.Broadcasts.WithLabelValues(string(kind)).Inc()
	return delivered, nil
}

func buildMessage(actorID uint64, in SendMessageInput) (*dbmysql.Message, error) {
	if in.RoomID == 0 {
		return nil, common.Invalidf("room id is required")
	}

	content := in.Content
	if content != nil {
		trimmed := strings.TrimSpace(*content)
		if trimmed == "" {
			content = nil
		} else if len(*content) > maxContentBytes {
			return nil, common.Invalidf("content is too long")
		}
	}

	attachment := in.AttachmentURL
	if attachment != nil && strings.TrimSpace(*attachment) == "" {
		attachment = nil
	}
	if attachment != nil {
		if err := common.ValidateAttachmentURL(*attachment); err != nil {
			return nil, err
		}
	}

	kind := in.Kind
	if kind == "" {
		kind = common.MessageKindText
		if attachment != nil {
			kind = common.DetectKindFromURL(*attachment)
		}
	}
	if !kind.IsValid() {
		return nil, common.Invalidf("unknown message type %q", kind)
	}

	switch {
	case kind == common.MessageKindText:
		if content == nil && attachment == nil {
			return nil, common.Invalidf("text message requires content")
		}
	case kind.IsMedia():
		if attachment == nil {
			return nil, common.Invalidf("%s message requires an attachment url", kind)
		}
	case kind == common.MessageKindLocation:
		if err := common.ValidateCoordinates(in.Latitude, in.Longitude); err != nil {
			return nil, err
		}
	}

	msg := &dbmysql.Message{
		Content:       content,
		Type:          kind,
		AttachmentURL: attachment,
		ReplyToID:     in.ReplyToID,
		IsForwarded:   in.IsForwarded,
		UserID:        actorID,
		RoomID:        in.RoomID,
	}
	if kind == common.MessageKindLocation {
		msg.Latitude = in.Latitude
		msg.Longitude = in.Longitude
	}
	if msg.ReplyToID != nil && *msg.ReplyToID == 0 {
		msg.ReplyToID = nil
	}
	return msg, nil
}
