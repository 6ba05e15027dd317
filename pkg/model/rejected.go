package model

import (
	"sync"
	"time"

	"github.com/mxvane/statecraft/pkg/runtime"
)

// rejectedEntry records one message Evaluate reported as unconsumed,
// alongside when it happened.
type rejectedEntry struct {
	Message  *Message
	Rejected time.Time
}

// RejectedQueue collects messages a machine declined to consume, so a
// caller can retry them later (after a transition that newly enables a
// match) or simply report them. It is not wired into Evaluate itself —
// callers record a rejection explicitly, the same way the model leaves
// retry policy up to its caller rather than baking one in.
type RejectedQueue struct {
	mu      sync.Mutex
	entries []rejectedEntry
}

// NewRejectedQueue constructs an empty queue.
func NewRejectedQueue() *RejectedQueue {
	return &RejectedQueue{}
}

// Record appends msg to the queue.
func (q *RejectedQueue) Record(msg *Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, rejectedEntry{Message: msg, Rejected: time.Now()})
}

// Drain removes and returns every queued message, oldest first.
func (q *RejectedQueue) Drain() []*Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Message, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.Message
	}
	q.entries = nil
	return out
}

// Len reports how many messages are currently queued.
func (q *RejectedQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Retry drains the queue and re-evaluates each message in order against
// sm/instance, stopping at the first error. Messages still unconsumed
// after retry, and messages not yet retried when an error stops the
// loop, are re-queued; the message whose evaluation returned the error
// is not.
func (q *RejectedQueue) Retry(sm *StateMachine, instance Instance, cfg *runtime.Config) error {
	msgs := q.Drain()
	for i, msg := range msgs {
		consumed, err := Evaluate(sm, instance, msg, cfg, true)
		if err != nil {
			for _, rest := range msgs[i+1:] {
				q.Record(rest)
			}
			return err
		}
		if !consumed {
			q.Record(msg)
		}
	}
	return nil
}
