package service

import (
	"context"
	"time"

	"famchat/internal/chat/event"
	"famchat/internal/common"
)

// MarkRead advances the actor's read mark. user_read goes to the whole
// room, sender included, but only when the mark actually moved.
func (s *ChatService) MarkRead(ctx context.Context, actorID uint64, in MarkReadInput) (bool, error) {
	if actorID == 0 {
		return false, common.ErrUnauthorized
	}
	if in.RoomID == 0 || in.MessageID == 0 {
		return false, common.Invalidf("room id and message id are required")
	}

	unlock := s.locks.lock(in.RoomID)
	advanced, recipients, err := s.markAndBroadcast(ctx, actorID, in)
	unlock()
	if err != nil || !advanced {
		return false, err
	}

	s.emit(common.ChatEvent{
		Type:       common.ReadAdvancedEvent,
		RoomID:     in.RoomID,
		ActorID:    actorID,
		MessageID:  in.MessageID,
		Recipients: recipients,
		OccurredAt: time.Now().UTC(),
	})
	return true, nil
}

func (s *ChatService) markAndBroadcast(ctx context.Context, actorID uint64, in MarkReadInput) (bool, int, error) {
	advanced, err := s.repo.SetLastRead(ctx, in.RoomID, actorID, in.MessageID)
	if err != nil || !advanced {
		return false, 0, err
	}
	recipients, err := s.broadcast(in.RoomID, event.UserRead, event.UserReadPayload{
		UserID:    actorID,
		RoomID:    in.RoomID,
		MessageID: in.MessageID,
	})
	if err != nil {
		return false, 0, err
	}
	return true, recipients, nil
}
