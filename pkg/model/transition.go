package model

import "github.com/mxvane/statecraft/pkg/tree"

// TransitionKind classifies how a transition traverses the containment
// tree.
type TransitionKind int

const (
	External TransitionKind = iota
	Local
	Internal
)

func (k TransitionKind) String() string {
	switch k {
	case External:
		return "External"
	case Local:
		return "Local"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Transition connects a source Vertex to an optional target Vertex,
// triggered by a named message (empty for a completion transition).
type Transition struct {
	source Vertex
	target Vertex
	kind   TransitionKind

	message string
	guard   Guard
	isElse  bool
	effect  []Action

	compiled *transitionPlan
}

// NewTransition constructs a transition from source to target (nil for
// an internal transition with no target), triggered by message ("" for
// a completion transition). Kind is normalised per the adjustment rule:
// no target forces Internal; a self-transition (target == source) is
// External; a target that is an ancestor or descendant of source on the
// same branch is Local; otherwise External.
func NewTransition(source Vertex, target Vertex, message string) *Transition {
	t := &Transition{source: source, target: target, message: message}
	t.kind = classifyKind(source, target)
	source.addOutgoing(t)
	if target != nil {
		target.addIncoming(t)
	}
	machineOf(source).markDirty()
	return t
}

func classifyKind(source, target Vertex) TransitionKind {
	if target == nil {
		return Internal
	}
	// A reflexive self-transition is always External: it exits and
	// re-enters the state itself (running both exit and entry behavior),
	// never Local, which would instead leave the state entered and only
	// disturb its active substates.
	if target == source {
		return External
	}
	srcAncestors := tree.Ancestors[Element](source)
	dstAncestors := tree.Ancestors[Element](target)
	if onSameBranch(srcAncestors, Element(target)) || onSameBranch(dstAncestors, Element(source)) {
		return Local
	}
	return External
}

func onSameBranch(chain []Element, candidate Element) bool {
	for _, e := range chain {
		if e == candidate {
			return true
		}
	}
	return false
}

// When sets (or replaces) the transition's guard. Also known as Where
// in some authoring styles.
func (t *Transition) When(g Guard) *Transition {
	t.guard = g
	t.isElse = false
	machineOf(t.source).markDirty()
	return t
}

// Where is an alias for When.
func (t *Transition) Where(g Guard) *Transition { return t.When(g) }

// Else marks this transition as the fallback selected by a Junction or
// Choice pseudo state only when no other outgoing guard matched.
func (t *Transition) Else() *Transition {
	t.isElse = true
	t.guard = nil
	machineOf(t.source).markDirty()
	return t
}

// Effect appends an action to the transition's behavior, run in
// declaration order between the exit and entry phases of traversal.
func (t *Transition) Effect(a Action) *Transition {
	t.effect = append(t.effect, a)
	machineOf(t.source).markDirty()
	return t
}

// Source returns the transition's source vertex.
func (t *Transition) Source() Vertex { return t.source }

// Target returns the transition's target vertex, or nil for Internal.
func (t *Transition) Target() Vertex { return t.target }

// Kind returns the transition's normalised kind.
func (t *Transition) Kind() TransitionKind { return t.kind }

// Message returns the triggering message name, empty for a completion
// transition.
func (t *Transition) Message() string { return t.message }

// IsCompletion reports whether this is a completion transition (no
// triggering message).
func (t *Transition) IsCompletion() bool { return t.message == "" }

// IsElse reports whether this is the else fallback of a Junction/Choice.
func (t *Transition) IsElse() bool { return t.isElse }

// evalGuard evaluates the transition's guard against msg/instance. A nil
// guard (and not else) is always true, matching plain unconditional
// transitions.
func (t *Transition) evalGuard(msg *Message, instance Instance) bool {
	if t.isElse {
		return false // else is only selected explicitly by the caller
	}
	if t.guard == nil {
		return true
	}
	return t.guard(msg, instance)
}
