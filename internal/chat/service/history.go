package service

import (
	"context"

	"famchat/internal/chat/view"
	"famchat/internal/common"
	"famchat/internal/dbmysql"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// History returns a page of messages oldest first, each carrying the
// viewer-relative read status.
func (s *ChatService) History(ctx context.Context, viewerID, roomID, beforeID uint64, limit int) ([]*view.Message, error) {
	if err := s.CheckAccess(ctx, viewerID, roomID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := s.repo.History(ctx, roomID, beforeID, limit)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ReadState(ctx, roomID)
	if err != nil {
		return nil, err
	}

	out := make([]*view.Message, 0, len(rows))
	for _, mc := range rows {
		out = append(out, view.FromContext(mc))
	}
	view.ApplyReadStatus(out, viewerID, members)
	return out, nil
}

func (s *ChatService) ReadState(ctx context.Context, viewerID, roomID uint64) ([]dbmysql.MemberReadState, error) {
	if err := s.CheckAccess(ctx, viewerID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ReadState(ctx, roomID)
}

func (s *ChatService) UnreadCounts(ctx context.Context, userID uint64) ([]dbmysql.UnreadCount, error) {
	if userID == 0 {
		return nil, common.ErrUnauthorized
	}
	return s.repo.UnreadCounts(ctx, userID)
}
