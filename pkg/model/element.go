// Package model implements the state machine model graph (Element,
// Region, Vertex, State, PseudoState, StateMachine, Transition), the
// compiler that precomputes entry/exit cascades and transition traverse
// plans, and the evaluator that walks those precomputed steps.
package model

import "github.com/mxvane/statecraft/pkg/runtime"

// Element is the root abstraction of every node in the containment
// tree. QualifiedName is always derived from the current
// runtime.NamespaceSeparator; it is never stored. ParentNode satisfies
// pkg/tree's generic Node constraint directly, so Ancestors/LCA can be
// computed over Element with no adapter.
type Element interface {
	Name() string
	ParentNode() (Element, bool)
	QualifiedName() string
}

// elementBase is embedded by every concrete Element implementation.
type elementBase struct {
	name string
}

func (e *elementBase) Name() string { return e.name }

// qualifiedName walks parent links via the supplied accessor, since Go
// has no way to express "the embedding type's ParentNode" from the base
// struct itself.
func qualifiedName(self Element) string {
	sep := runtime.NamespaceSeparator()
	parent, ok := self.ParentNode()
	if !ok {
		return self.Name()
	}
	return parent.QualifiedName() + sep + self.Name()
}
