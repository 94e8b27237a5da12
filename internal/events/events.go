package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
	EventBlockCreated     = "block_created"
	EventBlockDeleted     = "block_deleted"
)

// BookingEventPayload describes the minimal booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID   int64     `json:"booking_id"`
	Code        string    `json:"code"`
	RoomID      int64     `json:"room_id"`
	GuestID     int64     `json:"guest_id"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalPrice  float64   `json:"total_price"`
	ChangedByID int64     `json:"changed_by_id,omitempty"`
}

// BlockEventPayload describes a host availability block change.
type BlockEventPayload struct {
	BlockID   int64     `json:"block_id"`
	RoomID    int64     `json:"room_id"`
	HostID    int64     `json:"host_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason,omitempty"`
}

// Event is a lightweight in-process domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
	Processed bool
}

// EventHandler reacts to an event. A returned error is the handler's own
// concern; the bus does not retry.
type EventHandler func(event *Event) error

// EventBus fans events out to subscribed handlers, synchronously and in
// subscription order.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

// Publish delivers the event to every handler subscribed to its type.
// Handlers run on the caller's goroutine.
func (b *EventBus) Publish(event *Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	b.mu.RLock()
	subscribed := b.handlers[event.Type]
	b.mu.RUnlock()

	for _, handler := range subscribed {
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes it under the given type.
// A nil bus is a no-op so callers can leave eventing unconfigured.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
