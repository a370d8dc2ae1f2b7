package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famchat/internal/chat/event"
	"famchat/internal/chat/view"
	"famchat/internal/common"
)

func userReads(t *testing.T, s *recordingSession) []event.UserReadPayload {
	t.Helper()
	var out []event.UserReadPayload
	for _, env := range s.envelopes(t) {
		if env.Event != event.UserRead {
			continue
		}
		var p event.UserReadPayload
		require.NoError(t, json.Unmarshal(env.Data, &p))
		out = append(out, p)
	}
	return out
}

func TestMarkRead_BroadcastsToWholeRoomIncludingSender(t *testing.T) {
	f := newFixture(t, true)
	sa := f.join("a", alice, familyRoom)
	sb := f.join("b", bob, familyRoom)

	msg, err := f.svc.SendMessage(context.Background(), alice, SendMessageInput{RoomID: familyRoom, Content: strPtr("hi")})
	require.NoError(t, err)

	advanced, err := f.svc.MarkRead(context.Background(), bob, MarkReadInput{RoomID: familyRoom, MessageID: msg.ID})
	require.NoError(t, err)
	assert.True(t, advanced)

	want := []event.UserReadPayload{{UserID: bob, RoomID: familyRoom, MessageID: msg.ID}}
	assert.Equal(t, want, userReads(t, sa))
	assert.Equal(t, want, userReads(t, sb))
	assert.Equal(t, []common.ChatEventType{common.MessageCreatedEvent, common.ReadAdvancedEvent}, f.sink.types())
}

func TestMarkRead_NeverMovesBackwards(t *testing.T) {
	f := newFixture(t, true)
	sa := f.join("a", alice, familyRoom)

	var ids []uint64
	for i := 0; i < 3; i++ {
		m, err := f.svc.SendMessage(context.Background(), alice, SendMessageInput{RoomID: familyRoom, Content: strPtr("m")})
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	advanced, err := f.svc.MarkRead(context.Background(), bob, MarkReadInput{RoomID: familyRoom, MessageID: ids[2]})
	require.NoError(t, err)
	assert.True(t, advanced)

	advanced, err = f.svc.MarkRead(context.Background(), bob, MarkReadInput{RoomID: familyRoom, MessageID: ids[0]})
	require.NoError(t, err)
	assert.False(t, advanced)

	// repeating the same mark is also a no-op
	advanced, err = f.svc.MarkRead(context.Background(), bob, MarkReadInput{RoomID: familyRoom, MessageID: ids[2]})
	require.NoError(t, err)
	assert.False(t, advanced)

	require.NotNil(t, f.store.lastRead(familyRoom, bob))
	assert.Equal(t, ids[2], *f.store.lastRead(familyRoom, bob))
	assert.Len(t, userReads(t, sa), 1)
}

func TestMarkRead_Rejections(t *testing.T) {
	f := newFixture(t, true)
	sa := f.join("a", alice, otherRoom)

	msg, err := f.svc.SendMessage(context.Background(), alice, SendMessageInput{RoomID: otherRoom, Content: strPtr("x")})
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   uint64
		in      MarkReadInput
		wantErr error
	}{
		{"anonymous", 0, MarkReadInput{RoomID: otherRoom, MessageID: msg.ID}, common.ErrUnauthorized},
		{"missing ids", bob, MarkReadInput{}, common.ErrValidation},
		{"not a member", bob, MarkReadInput{RoomID: otherRoom, MessageID: msg.ID}, common.ErrNotFound},
		{"message in another room", bob, MarkReadInput{RoomID: familyRoom, MessageID: msg.ID}, common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advanced, err := f.svc.MarkRead(context.Background(), tt.actor, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, advanced)
		})
	}
	assert.Empty(t, userReads(t, sa))
}

// Alice posts in a room with Bob and Carol. Bob reads it, Carol reads
// nothing, and Alice sees her message as read.
func TestReadStatus_AnyOtherMemberCounts(t *testing.T) {
	f := newFixture(t, true)

	msg, err := f.svc.SendMessage(context.Background(), alice, SendMessageInput{RoomID: familyRoom, Content: strPtr("anyone?")})
	require.NoError(t, err)

	history, err := f.svc.History(context.Background(), alice, familyRoom, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, view.StatusSent, history[0].ReadStatus)

	_, err = f.svc.MarkRead(context.Background(), bob, MarkReadInput{RoomID: familyRoom, MessageID: msg.ID})
	require.NoError(t, err)

	history, err = f.svc.History(context.Background(), alice, familyRoom, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, view.StatusRead, history[0].ReadStatus)

	// bob is not the author, so he gets no status on alice's message
	history, err = f.svc.History(context.Background(), bob, familyRoom, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "", history[0].ReadStatus)
}
