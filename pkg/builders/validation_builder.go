package builders

import (
	"github.com/mxvane/statecraft/pkg/model"
	"github.com/mxvane/statecraft/pkg/observers"
	"github.com/mxvane/statecraft/pkg/runtime"
	"github.com/mxvane/statecraft/pkg/validate"
)

// ValidationBuilder combines the structural checker (pkg/validate) with
// a runtime ValidationObserver configured from author-supplied
// expectations, so a caller can express both "this machine is
// well-formed" and "this run visited the states and only the
// transitions I expected" through one fluent interface.
type ValidationBuilder struct {
	observer *observers.ValidationObserver
	sm       *model.StateMachine
}

// NewValidationBuilder creates a new validation builder for sm.
func NewValidationBuilder(sm *model.StateMachine) *ValidationBuilder {
	return &ValidationBuilder{
		observer: observers.NewValidationObserver(),
		sm:       sm,
	}
}

// ExpectState adds an expected (qualified-name) state to validation.
func (v *ValidationBuilder) ExpectState(qualifiedName string) *ValidationBuilder {
	v.observer.AddExpectedState(qualifiedName)
	return v
}

// AllowTransition adds an allowed transition to validation.
func (v *ValidationBuilder) AllowTransition(from, to string) *ValidationBuilder {
	v.observer.AddAllowedTransition(from, to)
	return v
}

// Observer returns the configured runtime ValidationObserver; register
// it with the machine via StateMachine.AddObserver before evaluating.
func (v *ValidationBuilder) Observer() *observers.ValidationObserver {
	return v.observer
}

// CheckStructure runs the non-fatal structural checker over the machine
// and returns whatever it finds.
func (v *ValidationBuilder) CheckStructure(console runtime.Console) []validate.Diagnostic {
	return validate.Check(v.sm, console)
}
