package common

import (
	"time"
)

// ChatEventType names a committed state change exported to observers.
type ChatEventType string

const (
	MessageCreatedEvent ChatEventType = "message_created"
	ReactionAddedEvent  ChatEventType = "reaction_added"
	ReadAdvancedEvent   ChatEventType = "read_advanced"
)

type EventMetadata map[string]interface{}

// ChatEvent is emitted after a broadcast has been handed to the gateway.
type ChatEvent struct {
	Type       ChatEventType `json:"type"`
	RoomID     uint64        `json:"room_id"`
	ActorID    uint64        `json:"actor_id"`
	MessageID  uint64        `json:"message_id"`
	Recipients int           `json:"recipients"`
	OccurredAt time.Time     `json:"occurred_at"`
	Payload    interface{}   `json:"payload,omitempty"`
	Metadata   EventMetadata `json:"metadata,omitempty"`
}
