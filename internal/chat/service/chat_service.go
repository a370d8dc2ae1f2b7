package service

import (
	"context"

	"famchat/internal/chat/hub"
	"famchat/internal/chat/repository"
	"famchat/internal/chat/view"
	"famchat/internal/common"
	"famchat/internal/dbmysql"

	"go.uber.org/zap"
)

//go:generate mockgen -source=chat_service.go -destination=mocks/mock_chat_service.go -package=mocks

// BroadcastRouter persists sends and fans the result out to the room.
type BroadcastRouter interface {
	SendMessage(ctx context.Context, actorID uint64, in SendMessageInput) (*view.Message, error)
	SendReaction(ctx context.Context, actorID uint64, in SendReactionInput) (*view.Message, error)
	CheckAccess(ctx context.Context, actorID, roomID uint64) error
}

// ReadTracker advances read marks and tells the room about it.
type ReadTracker interface {
	MarkRead(ctx context.Context, actorID uint64, in MarkReadInput) (bool, error)
}

// HistoryService serves the read-only REST endpoints.
type HistoryService interface {
	History(ctx context.Context, viewerID, roomID, beforeID uint64, limit int) ([]*view.Message, error)
	ReadState(ctx context.Context, viewerID, roomID uint64) ([]dbmysql.MemberReadState, error)
	UnreadCounts(ctx context.Context, userID uint64) ([]dbmysql.UnreadCount, error)
}

// Fanout resolves the sessions of a room. *hub.Index implements it.
type Fanout interface {
	SessionsFor(roomID uint64) []hub.Subscriber
	Unsubscribe(s hub.Subscriber)
}

// EventSink receives committed changes after they are broadcast.
type EventSink interface {
	NotifyAsync(event common.ChatEvent)
}

type SendMessageInput struct {
	RoomID        uint64
	Content       *string
	Kind          common.MessageKind
	AttachmentURL *string
	Latitude      *float64
	Longitude     *float64
	ReplyToID     *uint64
	IsForwarded   bool
}

type SendReactionInput struct {
	RoomID    uint64
	MessageID uint64
	Kind      string
}

type MarkReadInput struct {
	RoomID    uint64
	MessageID uint64
}

type Options struct {
	// EnforceMembership rejects sends, reactions and joins from users who
	// are not members of the room.
	EnforceMembership bool
}

// ChatService implements BroadcastRouter, ReadTracker and HistoryService
// over one store and one membership index.
type ChatService struct {
	repo   repository.ChatRepository
	fanout Fanout
	sink   EventSink
	log    *zap.Logger
	opts   Options
	locks  *roomLocks
}

// NewChatService wires the core. sink may be nil.
func NewChatService(r repository.ChatRepository, f Fanout, sink EventSink, log *zap.Logger, opts Options) *ChatService {
	return &ChatService{
		repo:   r,
		fanout: f,
		sink:   sink,
		log:    log,
		opts:   opts,
		locks:  newRoomLocks(),
	}
}

var (
	_ BroadcastRouter = (*ChatService)(nil)
	_ ReadTracker     = (*ChatService)(nil)
	_ HistoryService  = (*ChatService)(nil)
)

// CheckAccess reports NotFound for unknown rooms and, when membership is
// enforced, Forbidden for non-members.
func (s *ChatService) CheckAccess(ctx context.Context, actorID, roomID uint64) error {
	if actorID == 0 {
		return common.ErrUnauthorized
	}
	if roomID == 0 {
		return common.Invalidf("room id is required")
	}
	exists, err := s.repo.RoomExists(ctx, roomID)
	if err != nil {
		return err
	}
	if !exists {
		return common.NotFoundf("room %d", roomID)
	}
	return s.checkMember(ctx, actorID, roomID)
}

func (s *ChatService) checkMember(ctx context.Context, actorID, roomID uint64) error {
	if !s.opts.EnforceMembership {
		return nil
	}
	member, err := s.repo.IsMember(ctx, roomID, actorID)
	if err != nil {
		return err
	}
	if !member {
		return common.ErrForbidden
	}
	return nil
}

func (s *ChatService) emit(ev common.ChatEvent) {
	if s.sink == nil {
		return
	}
	s.sink.NotifyAsync(ev)
}
