package model

// StateMachine is the root State of a model, plus the bookkeeping the
// compiler and evaluator need: a dirty flag and the compiled
// onInitialise action list (the root's enter cascade with
// deepHistory=false).
type StateMachine struct {
	*State

	clean        bool
	onInitialise []Step
	observers    []Observer
}

// NewStateMachine constructs a new, empty root state named name. The
// machine starts dirty: Initialise (or an explicit Compile) must run
// before it can be evaluated.
func NewStateMachine(name string) *StateMachine {
	root := &State{vertexBase: vertexBase{elementBase: elementBase{name: name}}}
	sm := &StateMachine{State: root}
	root.sm = sm
	return sm
}

// markDirty invalidates any compiled plans. Called by every authoring
// mutation (constructors, AddEntry/AddExit, When/Else/Effect, remove).
func (sm *StateMachine) markDirty() { sm.clean = false }

// Clean reports whether the compiler has run since the last mutation.
func (sm *StateMachine) Clean() bool { return sm.clean }

// AddObserver registers an observer notified of lifecycle events during
// Initialise/Evaluate.
func (sm *StateMachine) AddObserver(o Observer) *StateMachine {
	sm.observers = append(sm.observers, o)
	return sm
}

func (sm *StateMachine) notifyEnter(el Element) {
	for _, o := range sm.observers {
		o.OnEnter(el)
	}
}

func (sm *StateMachine) notifyExit(el Element) {
	for _, o := range sm.observers {
		o.OnExit(el)
	}
}

func (sm *StateMachine) notifyTransition(t *Transition, msg *Message) {
	for _, o := range sm.observers {
		o.OnTransition(t, msg)
	}
}

func (sm *StateMachine) notifyCompletion(s *State) {
	for _, o := range sm.observers {
		o.OnCompletion(s)
	}
}

func (sm *StateMachine) notifyError(err error) {
	for _, o := range sm.observers {
		o.OnError(err)
	}
}

// Remove detaches a vertex from its region and marks the owning machine
// dirty. Any transitions referencing it are left in place on the other
// vertices; Compile does not detect or report them. Callers remove
// associated transitions themselves, mirroring the authoring API's "no
// implicit cascade" stance on mutation.
func (sm *StateMachine) Remove(v Vertex) {
	r := v.region()
	if r == nil {
		return
	}
	kept := r.vertices[:0]
	for _, existing := range r.vertices {
		if existing != v {
			kept = append(kept, existing)
		}
	}
	r.vertices = kept
	sm.markDirty()
}
