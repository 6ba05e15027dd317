package builders

import "github.com/mxvane/statecraft/pkg/model"

// SubmachineBuilder helps attach a referenced state machine to a state
// via State.Submachine, with a fluent API for the state's own entry/exit
// behavior.
type SubmachineBuilder struct {
	state *model.State
}

// NewSubmachineBuilder wraps an existing state as the host of a
// submachine. The state is usually a plain composite state added via
// StateMachineBuilder.AddState.
func NewSubmachineBuilder(state *model.State) *SubmachineBuilder {
	return &SubmachineBuilder{state: state}
}

// WithSubmachine attaches machine's root region as an extra region of
// the host state.
func (b *SubmachineBuilder) WithSubmachine(machine *model.StateMachine) *SubmachineBuilder {
	b.state.Submachine(machine)
	return b
}

// WithEntryAction adds an entry action to the host state.
func (b *SubmachineBuilder) WithEntryAction(action model.Action) *SubmachineBuilder {
	b.state.AddEntry(action)
	return b
}

// WithExitAction adds an exit action to the host state.
func (b *SubmachineBuilder) WithExitAction(action model.Action) *SubmachineBuilder {
	b.state.AddExit(action)
	return b
}

// Build returns the configured host state.
func (b *SubmachineBuilder) Build() *model.State {
	return b.state
}
