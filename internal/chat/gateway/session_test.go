package gateway

import (
	"sync"
	"testing"

	"famchat/internal/chat/hub"
	"famchat/internal/common"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestSession_SendNeverBlocks(t *testing.T) {
	s := newSession(nil, 1, "alice", 2, rate.NewLimiter(rate.Inf, 0))

	assert.NoError(t, s.Send([]byte("a")))
	assert.NoError(t, s.Send([]byte("b")))
	assert.ErrorIs(t, s.Send([]byte("c")), hub.ErrSlowConsumer)

	<-s.send
	assert.NoError(t, s.Send([]byte("c")))
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s := newSession(nil, 1, "alice", 2, rate.NewLimiter(rate.Inf, 0))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Close()
		}()
	}
	wg.Wait()

	assert.True(t, s.isClosed())
	assert.ErrorIs(t, s.Send([]byte("late")), hub.ErrSessionClosed)
	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestSession_CarriesIdentity(t *testing.T) {
	a := newSession(nil, 42, "grandma", 1, rate.NewLimiter(rate.Inf, 0))
	b := newSession(nil, 42, "grandma", 1, rate.NewLimiter(rate.Inf, 0))

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, uint64(42), a.UserID())

	id, ok := common.UserIDFromContext(a.ctx)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "grandma", common.HandleFromContext(a.ctx))
}
