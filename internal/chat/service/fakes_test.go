package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"famchat/internal/chat/event"
	"famchat/internal/chat/hub"
	"famchat/internal/chat/repository"
	"famchat/internal/chat/view"
	"famchat/internal/common"
	"famchat/internal/dbmysql"
)

// memStore is an in-memory ChatRepository with the same contract as the
// MySQL one.
type memStore struct {
	mu        sync.Mutex
	nextID    uint64
	users     map[uint64]dbmysql.User
	rooms     map[uint64]bool
	members   map[uint64]map[uint64]*uint64
	messages  map[uint64]dbmysql.Message
	reactions []dbmysql.Reaction
}

var _ repository.ChatRepository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uint64]dbmysql.User),
		rooms:    make(map[uint64]bool),
		members:  make(map[uint64]map[uint64]*uint64),
		messages: make(map[uint64]dbmysql.Message),
	}
}

func (m *memStore) addUser(id uint64, name string) {
	m.users[id] = dbmysql.User{ID: id, Username: name}
}

func (m *memStore) addRoom(id uint64, memberIDs ...uint64) {
	m.rooms[id] = true
	m.members[id] = make(map[uint64]*uint64)
	for _, u := range memberIDs {
		m.members[id][u] = nil
	}
}

func (m *memStore) CreateMessage(_ context.Context, msg *dbmysql.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.rooms[msg.RoomID] {
		return common.NotFoundf("room")
	}
	if _, ok := m.users[msg.UserID]; !ok {
		return common.NotFoundf("user")
	}
	if msg.ReplyToID != nil {
		target, ok := m.messages[*msg.ReplyToID]
		if !ok || target.RoomID != msg.RoomID {
			return common.NotFoundf("reply target")
		}
	}
	m.nextID++
	msg.ID = m.nextID
	msg.CreatedAt = time.Now()
	m.messages[msg.ID] = *msg
	return nil
}

func (m *memStore) FetchMessageWithContext(_ context.Context, id uint64) (*dbmysql.MessageContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, common.NotFoundf("message")
	}
	mc := &dbmysql.MessageContext{Message: msg, Author: m.users[msg.UserID]}
	if msg.ReplyToID != nil {
		if target, ok := m.messages[*msg.ReplyToID]; ok {
			mc.ReplyTo = &dbmysql.ReplySummary{
				ID:       target.ID,
				Content:  target.Content,
				Type:     target.Type,
				Username: m.users[target.UserID].Username,
			}
		}
	}
	for _, r := range m.reactions {
		if r.MessageID == id {
			mc.Reactions = append(mc.Reactions, dbmysql.ReactionRow{
				MessageID: id, Type: r.Type, UserID: r.UserID, Username: m.users[r.UserID].Username,
			})
		}
	}
	return mc, nil
}

func (m *memStore) UpsertReaction(_ context.Context, roomID, messageID, userID uint64, kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[messageID]
	if !ok || msg.RoomID != roomID {
		return common.NotFoundf("message")
	}
	for _, r := range m.reactions {
		if r.MessageID == messageID && r.UserID == userID && r.Type == kind {
			return nil
		}
	}
	m.reactions = append(m.reactions, dbmysql.Reaction{
		ID: uint64(len(m.reactions) + 1), MessageID: messageID, UserID: userID, Type: kind,
	})
	return nil
}

func (m *memStore) SetLastRead(_ context.Context, roomID, userID, messageID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[messageID]
	if !ok || msg.RoomID != roomID {
		return false, common.NotFoundf("message")
	}
	room := m.members[roomID]
	cur, member := room[userID]
	if !member {
		return false, common.NotFoundf("membership")
	}
	if cur != nil && *cur >= messageID {
		return false, nil
	}
	v := messageID
	room[userID] = &v
	return true, nil
}

func (m *memStore) lastRead(roomID, userID uint64) *uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[roomID][userID]
}

func (m *memStore) reactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reactions)
}

func (m *memStore) RoomExists(_ context.Context, roomID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[roomID], nil
}

func (m *memStore) IsMember(_ context.Context, roomID, userID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.members[roomID][userID]
	return ok, nil
}

func (m *memStore) History(ctx context.Context, roomID, beforeID uint64, limit int) ([]*dbmysql.MessageContext, error) {
	m.mu.Lock()
	var ids []uint64
	for id, msg := range m.messages {
		if msg.RoomID == roomID && (beforeID == 0 || id < beforeID) {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]*dbmysql.MessageContext, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		mc, err := m.FetchMessageWithContext(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, nil
}

func (m *memStore) ReadState(_ context.Context, roomID uint64) ([]dbmysql.MemberReadState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dbmysql.MemberReadState
	for u, lr := range m.members[roomID] {
		out = append(out, dbmysql.MemberReadState{UserID: u, LastReadMessageID: lr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *memStore) UnreadCounts(_ context.Context, userID uint64) ([]dbmysql.UnreadCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dbmysql.UnreadCount
	for roomID, members := range m.members {
		lr, ok := members[userID]
		if !ok {
			continue
		}
		var floor uint64
		if lr != nil {
			floor = *lr
		}
		var n int64
		for id, msg := range m.messages {
			if msg.RoomID == roomID && id > floor {
				n++
			}
		}
		out = append(out, dbmysql.UnreadCount{RoomID: roomID, UnreadCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out, nil
}

// recordingSession captures every frame it is sent.
type recordingSession struct {
	id     string
	userID uint64

	mu     sync.Mutex
	frames [][]byte
	closed bool
	slow   bool
}

func (s *recordingSession) ID() string     { return s.id }
func (s *recordingSession) UserID() uint64 { return s.userID }

func (s *recordingSession) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return hub.ErrSessionClosed
	}
	if s.slow {
		return hub.ErrSlowConsumer
	}
	s.frames = append(s.frames, frame)
	return nil
}

func (s *recordingSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *recordingSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *recordingSession) envelopes(t *testing.T) []event.Envelope {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Envelope, 0, len(s.frames))
	for _, f := range s.frames {
		env, err := event.Decode(f)
		require.NoError(t, err)
		out = append(out, env)
	}
	return out
}

func (s *recordingSession) messages(t *testing.T, kind event.Kind) []view.Message {
	t.Helper()
	var out []view.Message
	for _, env := range s.envelopes(t) {
		if env.Event != kind {
			continue
		}
		var m view.Message
		require.NoError(t, json.Unmarshal(env.Data, &m))
		out = append(out, m)
	}
	return out
}

// recordingSink collects exported events.
type recordingSink struct {
	mu     sync.Mutex
	events []common.ChatEvent
}

func (s *recordingSink) NotifyAsync(ev common.ChatEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) types() []common.ChatEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.ChatEventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

func strPtr(s string) *string { return &s }
func u64Ptr(v uint64) *uint64 { return &v }
