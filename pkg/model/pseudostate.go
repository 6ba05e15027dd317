package model

// PseudoKind is drawn from the closed set of pseudo state kinds the
// model supports.
type PseudoKind int

const (
	Initial PseudoKind = iota
	ShallowHistory
	DeepHistory
	Junction
	Choice
	Terminate
)

func (k PseudoKind) String() string {
	switch k {
	case Initial:
		return "Initial"
	case ShallowHistory:
		return "ShallowHistory"
	case DeepHistory:
		return "DeepHistory"
	case Junction:
		return "Junction"
	case Choice:
		return "Choice"
	case Terminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

// isInitial reports whether k is one of {Initial, ShallowHistory,
// DeepHistory}: the kinds eligible to be a region's single entry point.
func (k PseudoKind) isInitial() bool {
	return k == Initial || k == ShallowHistory || k == DeepHistory
}

// isHistory reports whether k is one of {ShallowHistory, DeepHistory}.
func (k PseudoKind) isHistory() bool {
	return k == ShallowHistory || k == DeepHistory
}

// PseudoState is a transient vertex: Initial, ShallowHistory,
// DeepHistory, Junction, Choice, or Terminate.
type PseudoState struct {
	vertexBase
	kind PseudoKind
}

// NewPseudoState constructs a pseudo state of the given kind under
// parent. At most one initial-kind pseudo state may exist per region;
// violating that is reported by validate, not by construction, per the
// model's invariant that validation (not construction) enforces region
// well-formedness.
func NewPseudoState(parent VertexParent, name string, kind PseudoKind) *PseudoState {
	region := parent.resolveRegion()
	ps := &PseudoState{vertexBase: vertexBase{elementBase: elementBase{name: name}, parent: region}, kind: kind}
	region.addVertex(ps)
	return ps
}

func (p *PseudoState) QualifiedName() string { return qualifiedName(p) }

// Kind returns the pseudo state's kind.
func (p *PseudoState) Kind() PseudoKind { return p.kind }
