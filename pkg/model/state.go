package model

import "github.com/mxvane/statecraft/pkg/runtime"

// VertexParent is satisfied by both *Region and *State: passing a State
// as a vertex's parent implicitly resolves to that state's default
// region, created lazily on first use.
type VertexParent interface {
	resolveRegion() *Region
}

func (r *Region) resolveRegion() *Region { return r }

func (s *State) resolveRegion() *Region {
	if len(s.regions) == 0 {
		newRegion(s, runtime.RegionDefaultName())
	}
	return s.regions[0]
}

// State is a simple, composite, or orthogonal vertex depending on how
// many regions it owns (zero, one, two-or-more respectively).
// FinalState is not a distinct Go type: a State with final=true, when
// entered, completes its containing region. NewTransition does not
// reject outgoing transitions from it; pkg/validate reports them as a
// diagnostic.
type State struct {
	vertexBase

	sm      *StateMachine // set only on the root state
	regions []*Region

	entryBehavior []Action
	exitBehavior  []Action

	final bool

	// submachine, if set, is compiled as an extra region appended to
	// regions at compile time, so a referenced machine's root region
	// drives this state exactly like any other region would.
	submachine *StateMachine
}

// NewState constructs a simple state under parent (a *Region or, via
// implicit default-region resolution, a *State).
func NewState(parent VertexParent, name string) *State {
	region := parent.resolveRegion()
	s := &State{vertexBase: vertexBase{elementBase: elementBase{name: name}, parent: region}}
	region.addVertex(s)
	return s
}

// NewFinalState constructs a FinalState: a state with no outgoing
// transitions whose entry completes its containing region.
func NewFinalState(parent VertexParent, name string) *State {
	s := NewState(parent, name)
	s.final = true
	return s
}

func (s *State) QualifiedName() string { return qualifiedName(s) }

func (s *State) machine() *StateMachine {
	if s.sm != nil {
		return s.sm
	}
	if s.parent == nil {
		return nil
	}
	return s.parent.owner.machine()
}

// IsFinal reports whether this state is a FinalState.
func (s *State) IsFinal() bool { return s.final }

// IsComposite reports whether this state owns exactly one region.
func (s *State) IsComposite() bool { return len(s.allRegions()) == 1 }

// IsOrthogonal reports whether this state owns two or more regions.
func (s *State) IsOrthogonal() bool { return len(s.allRegions()) >= 2 }

// IsSimple reports whether this state owns no regions.
func (s *State) IsSimple() bool { return len(s.allRegions()) == 0 }

// allRegions includes the inlined submachine region, if any.
func (s *State) allRegions() []*Region {
	if s.submachine == nil {
		return s.regions
	}
	return append(append([]*Region{}, s.regions...), s.submachine.regions...)
}

// Regions returns the state's owned regions, including an inlined
// submachine region if Submachine was called.
func (s *State) Regions() []*Region {
	out := make([]*Region, len(s.allRegions()))
	copy(out, s.allRegions())
	return out
}

// Submachine attaches machine's root region to this state as an extra
// region, so entering/exiting this state also drives the submachine.
func (s *State) Submachine(machine *StateMachine) {
	s.submachine = machine
	s.machine().markDirty()
}

// AddEntry appends an action to the state's entry behavior.
func (s *State) AddEntry(a Action) *State {
	s.entryBehavior = append(s.entryBehavior, a)
	s.machine().markDirty()
	return s
}

// AddExit appends an action to the state's exit behavior.
func (s *State) AddExit(a Action) *State {
	s.exitBehavior = append(s.exitBehavior, a)
	s.machine().markDirty()
	return s
}
