package model

import (
	"github.com/mxvane/statecraft/pkg/errs"
	"github.com/mxvane/statecraft/pkg/runtime"
)

// Initialise recompiles sm if it is dirty and autoCompile is true, then,
// if instance is non-nil, runs the compiled onInitialise cascade against
// it and clears its terminated flag.
func Initialise(sm *StateMachine, instance Instance, cfg *runtime.Config, autoCompile bool) error {
	if !sm.clean && autoCompile {
		Compile(sm)
	}
	if instance == nil {
		return nil
	}
	instance.SetTerminated(false)
	ex := &Execution{Machine: sm, Instance: instance, Message: nil, Config: runtime.Resolved(cfg)}
	return runSteps(ex, sm.onInitialise, false)
}

// Evaluate dispatches msg into instance, returning whether it was
// consumed. See spec.md §4.E for the exact tie-break and recursion
// rules this implements.
func Evaluate(sm *StateMachine, instance Instance, msg *Message, cfg *runtime.Config, autoCompile bool) (bool, error) {
	if instance.IsTerminated() {
		return false, nil
	}
	if autoCompile && !sm.clean {
		if err := Initialise(sm, nil, cfg, true); err != nil {
			return false, err
		}
	}
	ex := &Execution{Machine: sm, Instance: instance, Message: msg, Config: runtime.Resolved(cfg)}
	consumed, err := dispatch(ex, sm.State)
	if err != nil {
		return false, err
	}
	return consumed, nil
}

// dispatch implements 4.E step 3: at state s, look for exactly one
// outgoing transition triggered by the message with a true guard; if
// none, recurse into every currently-active child region.
func dispatch(ex *Execution, s *State) (bool, error) {
	var matched *Transition
	count := 0
	for _, t := range s.outgoing() {
		if t.IsCompletion() || t.Message() != ex.Message.Name {
			continue
		}
		if t.evalGuard(ex.Message, ex.Instance) {
			matched = t
			count++
		}
	}
	if count > 1 {
		return false, errs.NewIllFormedError(s.QualifiedName(), "multiple enabled transitions for message "+ex.Message.Name)
	}
	if count == 1 {
		if err := executeTransition(ex, matched); err != nil {
			return false, err
		}
		return true, nil
	}

	consumed := false
	for _, region := range s.allRegions() {
		cur, ok := ex.Instance.GetCurrent(region).(*State)
		if !ok || cur == nil {
			continue
		}
		childConsumed, err := dispatch(ex, cur)
		if err != nil {
			return false, err
		}
		if childConsumed {
			consumed = true
		}
	}
	return consumed, nil
}

// IsActive reports whether v's region current equals v, recursively up
// to the root: v is active only if every ancestor State along the way
// is itself active.
func IsActive(v Vertex, instance Instance) bool {
	region := v.region()
	if region == nil {
		return true // the root state is always considered active
	}
	if instance.GetCurrent(region) != v {
		return false
	}
	return IsActive(region.owner, instance)
}

// IsComplete reports, for a Region, whether its current vertex is a
// FinalState, and for a State, whether every one of its regions is
// complete (vacuously true for a simple state).
func IsComplete(el Element, instance Instance) bool {
	switch e := el.(type) {
	case *Region:
		cur, ok := instance.GetCurrent(e).(*State)
		return ok && cur != nil && cur.IsFinal()
	case *State:
		return isComplete(e, instance)
	default:
		return false
	}
}
