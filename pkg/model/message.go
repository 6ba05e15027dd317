package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is dispatched into a StateMachine instance via Evaluate. Its
// ID is stamped with a uuid so observers and diagram/export tooling can
// correlate a single dispatch across log lines.
type Message struct {
	Name      string
	Data      any
	ID        string
	Timestamp time.Time
}

// NewMessage creates a Message with a fresh identity and timestamp.
func NewMessage(name string) *Message {
	return &Message{Name: name, ID: uuid.New().String(), Timestamp: time.Now()}
}

// NewMessageWithData creates a Message carrying a payload.
func NewMessageWithData(name string, data any) *Message {
	m := NewMessage(name)
	m.Data = data
	return m
}

// completionMessage is the zero-value sentinel used internally to run a
// completion transition; it never carries a trigger name a client could
// match against.
var completionMessage = &Message{Name: ""}

// Instance is the contract the core depends on and never stores inside
// model nodes: a per-execution map of region to last-known state, plus a
// termination flag.
type Instance interface {
	SetCurrent(region *Region, v Vertex)
	GetCurrent(region *Region) Vertex
	IsTerminated() bool
	SetTerminated(bool)
}

// Guard evaluates whether a transition should be taken.
type Guard func(msg *Message, instance Instance) bool

// Action performs an operation during entry, exit, or a transition
// effect.
type Action func(msg *Message, instance Instance) error
