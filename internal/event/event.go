package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	OrderPlaced       Type = "order.placed"
	AuthRefreshFailed Type = "auth.refresh_failed"
	SessionChanged    Type = "session.changed"
)

// OrderPlacedPayloadV1 carries an order the backend accepted
type OrderPlacedPayloadV1 struct {
	Order     domain.Order `json:"order"`
	Timestamp int64        `json:"timestamp"`
}

// RefreshFailedPayloadV1 is published when the token refresh exchange fails
type RefreshFailedPayloadV1 struct {
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// SessionChangedPayloadV1 describes an auth session transition
type SessionChangedPayloadV1 struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Email     string `json:"email,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ErrUnexpectedType is returned by a payload accessor called on another event type
var ErrUnexpectedType = errors.New("unexpected event type")

// OrderPlacedPayload returns the payload of an order.placed event
func (e Event) OrderPlacedPayload() (OrderPlacedPayloadV1, error) {
	return payloadAs[OrderPlacedPayloadV1](e, OrderPlaced)
}

// RefreshFailedPayload returns the payload of an auth.refresh_failed event
func (e Event) RefreshFailedPayload() (RefreshFailedPayloadV1, error) {
	return payloadAs[RefreshFailedPayloadV1](e, AuthRefreshFailed)
}

// SessionChangedPayload returns the payload of a session.changed event
func (e Event) SessionChangedPayload() (SessionChangedPayloadV1, error) {
	return payloadAs[SessionChangedPayloadV1](e, SessionChanged)
}

// payloadAs accepts the struct MemoryBus carries as well as the generic
// JSON form an event takes after being unmarshalled.
func payloadAs[T any](e Event, want Type) (T, error) {
	var result T
	if e.Type != want {
		return result, fmt.Errorf("%w: %s, want %s", ErrUnexpectedType, e.Type, want)
	}

	switch p := e.Payload.(type) {
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
	case json.RawMessage:
		return result, json.Unmarshal(p, &result)
	}

	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// NewOrderPlacedEvent creates a new order placed event
func NewOrderPlacedEvent(order domain.Order, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrderPlaced,
		Payload: OrderPlacedPayloadV1{
			Order:     order,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetaKeySource: source},
	}
}

// NewRefreshFailedEvent creates a new refresh failure event
func NewRefreshFailedEvent(ctx context.Context, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AuthRefreshFailed,
		Payload: RefreshFailedPayloadV1{
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetaKeyRequestID: logger.GetRequestID(ctx)},
	}
}

// NewSessionChangedEvent creates a new session transition event
func NewSessionChangedEvent(from, to, email string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionChanged,
		Payload: SessionChangedPayloadV1{
			From:      from,
			To:        to,
			Email:     email,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event's type synchronously, in
// subscription order, and joins their failures into one error.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishBestEffort publishes and logs a failure instead of returning it.
// A nil bus is allowed.
func PublishBestEffort(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
