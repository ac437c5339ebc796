package events

import (
	"context"
	"time"
)

const (
	TopicUsers   = "user_events"
	TopicBooks   = "book_events"
	TopicReviews = "review_events"
	TopicOrders  = "order_events"
)

const (
	UserRegistered     = "user_registered"
	BookCreated        = "book_created"
	BookUpdated        = "book_updated"
	ReviewCreated      = "review_created"
	ReviewUpdated      = "review_updated"
	ReviewDeleted      = "review_deleted"
	OrderCreated       = "order_created"
	OrderStatusUpdated = "order_status_updated"
	OrderCancelled     = "order_cancelled"
)

// Event is the JSON envelope written to every topic.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func New(eventType string, data any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }

func (Nop) Close() error { return nil }
