// Package visitor provides an optional double-dispatch traversal over
// a compiled model graph, external to pkg/model itself (spec.md keeps
// Element free of any accept method — see Walk below).
package visitor

import "github.com/mxvane/statecraft/pkg/model"

// Visitor is implemented by callers that want a typed callback per
// element kind instead of type-switching themselves. Every method has
// a default pass-through via DefaultVisitor, so a caller only
// overrides the kinds it cares about.
type Visitor interface {
	VisitStateMachine(sm *model.StateMachine)
	VisitRegion(r *model.Region)
	VisitState(s *model.State)
	VisitPseudoState(p *model.PseudoState)
	VisitTransition(t *model.Transition)
}

// DefaultVisitor is a no-op Visitor meant to be embedded so callers
// only implement the methods they need.
type DefaultVisitor struct{}

func (DefaultVisitor) VisitStateMachine(*model.StateMachine) {}
func (DefaultVisitor) VisitRegion(*model.Region)             {}
func (DefaultVisitor) VisitState(*model.State)               {}
func (DefaultVisitor) VisitPseudoState(*model.PseudoState)   {}
func (DefaultVisitor) VisitTransition(*model.Transition)     {}

// Walk performs a depth-first traversal of sm, dispatching each
// element (the machine itself, then every region/vertex/transition
// reachable from its root state) to v in construction order.
//
// model.Element deliberately has no Accept method of its own (the
// visitor pattern here is a thin external layer, not a core model
// contract) so Walk does the type switch itself, the same way a
// caller would.
func Walk(sm *model.StateMachine, v Visitor) {
	v.VisitStateMachine(sm)
	walkState(sm.State, v)
}

func walkState(s *model.State, v Visitor) {
	v.VisitState(s)
	for _, r := range s.Regions() {
		walkRegion(r, v)
	}
}

func walkRegion(r *model.Region, v Visitor) {
	v.VisitRegion(r)
	for _, vert := range r.Vertices() {
		switch vv := vert.(type) {
		case *model.State:
			walkState(vv, v)
			for _, t := range vv.Outgoing() {
				v.VisitTransition(t)
			}
		case *model.PseudoState:
			v.VisitPseudoState(vv)
			for _, t := range vv.Outgoing() {
				v.VisitTransition(t)
			}
		}
	}
}
