package log

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents classification of an event.
type EventType string

const (
	CommandInput  EventType = "COMMAND_INPUT"
	CommandOutput EventType = "COMMAND_OUTPUT"
	LLMInput      EventType = "LLM_INPUT"
	LLMOutput     EventType = "LLM_OUTPUT"
	ToolInput     EventType = "TOOL_INPUT"
	ToolOutput    EventType = "TOOL_OUTPUT"
)

type Event struct {
	Time      time.Time   `json:"ts"`
	RequestID string      `json:"rid,omitempty"`
	EventType EventType   `json:"eventtype"`
	Payload   interface{} `json:"p"`
}

// Collector collects events and fans them out to subscribers.
type Collector struct {
	mu   sync.RWMutex
	subs []chan Event
}

var Default = &Collector{}

// Publish sends an event of type t, stamped with the context request id, to Default.
func Publish(ctx context.Context, t EventType, payload interface{}) {
	Default.Publish(Event{Time: time.Now(), RequestID: RequestID(ctx), EventType: t, Payload: payload})
}

// Publish sends an event to all subscribers; a full subscriber drops the event.
func (c *Collector) Publish(e Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a receive-only channel for events. buf is channel size.
func (c *Collector) Subscribe(buf int) <-chan Event {
	ch := make(chan Event, buf)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (c *Collector) Unsubscribe(sub <-chan Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ch := range c.subs {
		if ch == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// FileSink writes every event (JSON encoded) to w, filtering by event types if provided.
// The returned function stops the sink and waits for pending writes.
func (c *Collector) FileSink(w io.Writer, filters ...EventType) func() {
	want := map[EventType]bool{}
	for _, f := range filters {
		want[f] = true
	}
	sub := c.Subscribe(100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		enc := json.NewEncoder(w)
		for ev := range sub {
			if len(want) > 0 && !want[ev.EventType] {
				continue
			}
			_ = enc.Encode(ev)
		}
	}()
	return func() {
		c.Unsubscribe(sub)
		<-done
	}
}

// FileSink attaches a sink to Default.
func FileSink(w io.Writer, filters ...EventType) func() {
	return Default.FileSink(w, filters...)
}

type requestIDKey struct{}

// WithRequestID returns ctx carrying id, generating a new one when id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
