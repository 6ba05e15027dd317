package builders

import (
	"github.com/mxvane/statecraft/pkg/model"
	"github.com/mxvane/statecraft/pkg/runtime"
)

// ConditionalActions provides helper functions for common guard/action
// shapes, built over the message the transition was triggered by — the
// Instance contract (spec.md §3) is opaque to the core engine and
// carries no generic key/value extended state, so these helpers work
// only off Message.Data/Message.Name.
type ConditionalActions struct{}

// IfMessageDataEquals creates a guard that checks the triggering
// message's Data against value.
func (ConditionalActions) IfMessageDataEquals(value interface{}) model.Guard {
	return func(msg *model.Message, instance model.Instance) bool {
		return msg != nil && msg.Data == value
	}
}

// IfMessageNamed creates a guard that checks the triggering message's
// Name.
func (ConditionalActions) IfMessageNamed(name string) model.Guard {
	return func(msg *model.Message, instance model.Instance) bool {
		return msg != nil && msg.Name == name
	}
}

// LogMessage creates an action that writes message through console.
func (ConditionalActions) LogMessage(console runtime.Console, text string) model.Action {
	return func(msg *model.Message, instance model.Instance) error {
		console.Log("%s", text)
		return nil
	}
}

// Conditions provides a singleton instance of ConditionalActions.
var Conditions = ConditionalActions{}
