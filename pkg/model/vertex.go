package model

// Vertex is anything that can be the source or target of a Transition:
// a State or a PseudoState.
type Vertex interface {
	Element
	region() *Region
	outgoing() []*Transition
	incoming() []*Transition
	addOutgoing(t *Transition)
	addIncoming(t *Transition)
	enterCascade() []Step
	exitCascade() []Step
}

// vertexBase is embedded by State and PseudoState.
type vertexBase struct {
	elementBase
	parent *Region
	out    []*Transition
	in     []*Transition

	compiledEnter []Step
	compiledExit  []Step
}

func (v *vertexBase) ParentNode() (Element, bool) {
	if v.parent == nil {
		return nil, false
	}
	return v.parent, true
}

func (v *vertexBase) region() *Region { return v.parent }

func (v *vertexBase) outgoing() []*Transition {
	out := make([]*Transition, len(v.out))
	copy(out, v.out)
	return out
}

func (v *vertexBase) incoming() []*Transition {
	out := make([]*Transition, len(v.in))
	copy(out, v.in)
	return out
}

func (v *vertexBase) addOutgoing(t *Transition) { v.out = append(v.out, t) }
func (v *vertexBase) addIncoming(t *Transition)  { v.in = append(v.in, t) }

// Outgoing returns the vertex's outgoing transitions in construction
// order.
func (v *vertexBase) Outgoing() []*Transition { return v.outgoing() }

// Incoming returns the vertex's incoming transitions in construction
// order.
func (v *vertexBase) Incoming() []*Transition { return v.incoming() }

func (v *vertexBase) enterCascade() []Step { return v.compiledEnter }
func (v *vertexBase) exitCascade() []Step  { return v.compiledExit }

// machineOf walks up from any vertex to the owning StateMachine.
func machineOf(v Vertex) *StateMachine {
	var e Element = v
	for {
		parent, ok := e.ParentNode()
		if !ok {
			if sm, ok := e.(*StateMachine); ok {
				return sm
			}
			if st, ok := e.(*State); ok {
				return st.sm
			}
			return nil
		}
		e = parent
	}
}
