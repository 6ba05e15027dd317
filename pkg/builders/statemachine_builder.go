// Package builders provides a fluent authoring layer over pkg/model:
// states, regions and pseudostates are addressed by the dotted path the
// caller built them with ("Parent.Child"), not by the model's own
// QualifiedName (which additionally threads in synthesised region
// names and so isn't guessable from the outside).
package builders

import (
	"github.com/mxvane/statecraft/pkg/model"
)

// StateMachineBuilder provides a fluent interface for building state machines.
type StateMachineBuilder struct {
	sm      *model.StateMachine
	byPath  map[string]interface{} // author-facing path -> *model.State, *model.Region or *model.PseudoState
	current *model.State
}

// StateBuilder provides a fluent interface for configuring a single state
// just added to the machine.
type StateBuilder struct {
	builder *StateMachineBuilder
	state   *model.State
}

// RegionBuilder provides a fluent interface for configuring a single
// named region of an orthogonal state.
type RegionBuilder struct {
	builder *StateMachineBuilder
	path    string
	region  *model.Region
	current *model.State
}

// TransitionBuilder provides a fluent interface for configuring a single
// transition just added to the machine.
type TransitionBuilder struct {
	builder    *StateMachineBuilder
	transition *model.Transition
}

// NewStateMachineBuilder creates a new state machine builder rooted at a
// top-level state named name.
func NewStateMachineBuilder(name string) *StateMachineBuilder {
	sm := model.NewStateMachine(name)
	b := &StateMachineBuilder{sm: sm, byPath: make(map[string]interface{})}
	b.current = sm.State
	return b
}

func join(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "." + name
}

// parent resolves an author-facing path to a VertexParent, defaulting
// to the machine's root state when path is empty or unknown.
func (b *StateMachineBuilder) parent(path string) model.VertexParent {
	if path == "" {
		return b.sm.State
	}
	if v, ok := b.byPath[path]; ok {
		if vp, ok := v.(model.VertexParent); ok {
			return vp
		}
	}
	return b.sm.State
}

// AddState adds a simple state under parentPath ("" for the root).
func (b *StateMachineBuilder) AddState(parentPath, name string) *StateMachineBuilder {
	s := model.NewState(b.parent(parentPath), name)
	b.byPath[join(parentPath, name)] = s
	b.current = s
	return b
}

// AddFinalState adds a FinalState under parentPath.
func (b *StateMachineBuilder) AddFinalState(parentPath, name string) *StateMachineBuilder {
	s := model.NewFinalState(b.parent(parentPath), name)
	b.byPath[join(parentPath, name)] = s
	b.current = s
	return b
}

// AddPseudoState adds a pseudostate of the given kind under parentPath.
func (b *StateMachineBuilder) AddPseudoState(parentPath, name string, kind model.PseudoKind) *StateMachineBuilder {
	p := model.NewPseudoState(b.parent(parentPath), name, kind)
	b.byPath[join(parentPath, name)] = p
	return b
}

// AddRegion adds an explicit named region under an orthogonal state,
// for callers that need more than the one implicit default region.
func (b *StateMachineBuilder) AddRegion(statePath, name string) *RegionBuilder {
	parent, ok := b.byPath[statePath].(*model.State)
	if !ok {
		parent = b.current
	}
	r := model.NewRegion(parent, name)
	path := join(statePath, name)
	b.byPath[path] = r
	return &RegionBuilder{builder: b, path: path, region: r}
}

// WithEntryAction adds an entry action to the most recently added state.
func (b *StateMachineBuilder) WithEntryAction(action model.Action) *StateMachineBuilder {
	if b.current != nil {
		b.current.AddEntry(action)
	}
	return b
}

// WithExitAction adds an exit action to the most recently added state.
func (b *StateMachineBuilder) WithExitAction(action model.Action) *StateMachineBuilder {
	if b.current != nil {
		b.current.AddExit(action)
	}
	return b
}

// AddTransition adds a transition between two author-facing paths,
// triggered by message (empty for a completion transition).
func (b *StateMachineBuilder) AddTransition(fromPath, toPath, message string) *TransitionBuilder {
	from, fromOK := b.byPath[fromPath].(model.Vertex)
	to, toOK := b.byPath[toPath].(model.Vertex)
	if !fromOK {
		return &TransitionBuilder{builder: b}
	}
	var target model.Vertex
	if toOK {
		target = to
	}
	t := model.NewTransition(from, target, message)
	return &TransitionBuilder{builder: b, transition: t}
}

// WithGuard adds a guard condition to the transition.
func (tb *TransitionBuilder) WithGuard(guard model.Guard) *TransitionBuilder {
	if tb.transition != nil {
		tb.transition.When(guard)
	}
	return tb
}

// WithEffect adds an effect action to the transition.
func (tb *TransitionBuilder) WithEffect(action model.Action) *TransitionBuilder {
	if tb.transition != nil {
		tb.transition.Effect(action)
	}
	return tb
}

// AsElse marks the transition as a Junction/Choice else fallback.
func (tb *TransitionBuilder) AsElse() *TransitionBuilder {
	if tb.transition != nil {
		tb.transition.Else()
	}
	return tb
}

// Done returns to the parent builder to continue the fluent chain.
func (tb *TransitionBuilder) Done() *StateMachineBuilder {
	return tb.builder
}

// WithState adds a simple state under the root and returns a StateBuilder
// for configuring it further.
func (b *StateMachineBuilder) WithState(name string) *StateBuilder {
	b.AddState("", name)
	return &StateBuilder{builder: b, state: b.current}
}

// WithEntryAction adds an entry action to the state.
func (sb *StateBuilder) WithEntryAction(action model.Action) *StateBuilder {
	sb.state.AddEntry(action)
	return sb
}

// WithExitAction adds an exit action to the state.
func (sb *StateBuilder) WithExitAction(action model.Action) *StateBuilder {
	sb.state.AddExit(action)
	return sb
}

// Done returns the parent builder to continue the fluent chain.
func (sb *StateBuilder) Done() *StateMachineBuilder {
	return sb.builder
}

// WithState adds a state to the region.
func (rb *RegionBuilder) WithState(name string) *RegionBuilder {
	s := model.NewState(rb.region, name)
	rb.builder.byPath[join(rb.path, name)] = s
	rb.current = s
	return rb
}

// WithEntryAction adds an entry action to the region's current state.
func (rb *RegionBuilder) WithEntryAction(action model.Action) *RegionBuilder {
	if rb.current != nil {
		rb.current.AddEntry(action)
	}
	return rb
}

// WithExitAction adds an exit action to the region's current state.
func (rb *RegionBuilder) WithExitAction(action model.Action) *RegionBuilder {
	if rb.current != nil {
		rb.current.AddExit(action)
	}
	return rb
}

// Done returns the parent builder to continue the fluent chain.
func (rb *RegionBuilder) Done() *StateMachineBuilder {
	return rb.builder
}

// AddObserver registers an observer on the underlying machine.
func (b *StateMachineBuilder) AddObserver(o model.Observer) *StateMachineBuilder {
	b.sm.AddObserver(o)
	return b
}

// Build compiles the constructed machine and returns it.
func (b *StateMachineBuilder) Build() (*model.StateMachine, error) {
	model.Compile(b.sm)
	return b.sm, nil
}
