// Package events hands committed chat events to export observers on a
// small worker pool, off the fan-out path.
package events

import (
	"context"
	"sync"

	"famchat/internal/common"
	"famchat/internal/config"
	"famchat/internal/metrics"

	"go.uber.org/zap"
)

type Dispatcher struct {
	observers    map[string]common.Observer
	eventChannel chan common.ChatEvent
	log          *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ common.Subject = (*Dispatcher)(nil)

func NewDispatcher(cfg config.EventsConfig, log *zap.Logger) *Dispatcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	buffer := cfg.ChannelBufferSize
	if buffer < 1 {
		buffer = 1
	}

	d := &Dispatcher{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.ChatEvent, buffer),
		log:          log.Named("events"),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.processEvents()
	}

	return d
}

func (d *Dispatcher) Subscribe(observer common.Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers[observer.Name()] = observer
	d.log.Info("observer subscribed", zap.String("observer", observer.Name()))
}

func (d *Dispatcher) Unsubscribe(observer common.Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.observers, observer.Name())
	d.log.Info("observer unsubscribed", zap.String("observer", observer.Name()))
}

// Notify delivers event to every observer on the calling goroutine. One
// failing observer does not stop the rest.
func (d *Dispatcher) Notify(event common.ChatEvent) {
	d.mu.RLock()
	observers := make([]common.Observer, 0, len(d.observers))
	for _, obs := range d.observers {
		observers = append(observers, obs)
	}
	d.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			d.log.Warn("observer update failed",
				zap.String("observer", observer.Name()),
				zap.String("type", string(event.Type)),
				zap.Uint64("room_id", event.RoomID),
				zap.Error(err))
		}
	}
}

// NotifyAsync queues event for the workers. It never blocks: when the
// queue is full or the dispatcher is shut down the event is dropped.
func (d *Dispatcher) NotifyAsync(event common.ChatEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.eventChannel <- event:
	default:
		metrics.EventsDropped.Inc()
		d.log.Warn("event channel full, dropping event",
			zap.String("type", string(event.Type)),
			zap.Uint64("room_id", event.RoomID))
	}
}

func (d *Dispatcher) processEvents() {
	defer d.wg.Done()
	for event := range d.eventChannel {
		d.Notify(event)
	}
}

// Shutdown stops accepting events and waits for the workers to drain the
// queue, or for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.eventChannel)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("dispatcher shutdown complete")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
