package event

import "time"

// Context describes where an event originated
type Context struct {
	// RunID is the workflow run tag
	RunID string `json:"runID,omitempty"`
	// RFPID is the canonical RFP identifier
	RFPID     string `json:"rfpID,omitempty"`
	EventType string `json:"eventType"`
	Source    string `json:"source,omitempty"`
}

// Event wraps a typed payload with its origin
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Data:      data,
	}
}

// Type returns event type or empty string
func (e *Event[T]) Type() string {
	if e == nil || e.Context == nil {
		return ""
	}
	return e.Context.EventType
}
