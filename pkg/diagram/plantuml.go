package diagram

import (
	"fmt"
	"strings"

	"github.com/mxvane/statecraft/pkg/model"
)

// ExportPlantUML renders sm as PlantUML state diagram source.
//
// Composite/orthogonal states are emitted as PlantUML nested "state"
// blocks; Initial and Terminate pseudostates (and final states) map
// onto PlantUML's [*]. Other pseudostates appear in transitions under
// their own names, with no choice/history shorthand and no state
// declaration of their own.
func ExportPlantUML(sm *model.StateMachine) string {
	var b strings.Builder
	b.WriteString("@startuml\n")
	writeStateBlock(&b, sm.State, 0, true)
	writeTransitions(&b, sm.State)
	b.WriteString("@enduml\n")
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writeStateBlock(b *strings.Builder, s *model.State, depth int, isRoot bool) {
	if !isRoot {
		if s.IsFinal() {
			return
		}
		switch {
		case s.IsOrthogonal():
			indent(b, depth)
			fmt.Fprintf(b, "state %s {\n", plantName(s.Name()))
			for i, r := range s.Regions() {
				if i > 0 {
					indent(b, depth+1)
					b.WriteString("--\n")
				}
				writeRegionVertices(b, r, depth+1)
			}
			indent(b, depth)
			b.WriteString("}\n")
			return
		case s.IsComposite():
			indent(b, depth)
			fmt.Fprintf(b, "state %s {\n", plantName(s.Name()))
			writeRegionVertices(b, s.Regions()[0], depth+1)
			indent(b, depth)
			b.WriteString("}\n")
			return
		default:
			indent(b, depth)
			fmt.Fprintf(b, "state %s\n", plantName(s.Name()))
			return
		}
	}

	for _, r := range s.Regions() {
		writeRegionVertices(b, r, depth)
	}
}

func writeRegionVertices(b *strings.Builder, r *model.Region, depth int) {
	for _, v := range r.Vertices() {
		if child, ok := v.(*model.State); ok {
			writeStateBlock(b, child, depth, false)
		}
	}
}

func writeTransitions(b *strings.Builder, root *model.State) {
	var walk func(s *model.State)
	walk = func(s *model.State) {
		for _, r := range s.Regions() {
			for _, v := range r.Vertices() {
				for _, t := range outgoingOf(v) {
					writeTransitionLine(b, t)
				}
				if child, ok := v.(*model.State); ok {
					walk(child)
				}
			}
		}
	}
	walk(root)
}

func writeTransitionLine(b *strings.Builder, t *model.Transition) {
	from := plantVertexLabel(t.Source())
	to := "[*]"
	if t.Target() != nil {
		to = plantVertexLabel(t.Target())
	}
	label := t.Message()
	if t.IsElse() {
		if label != "" {
			label += " "
		}
		label += "[else]"
	}
	if label == "" {
		fmt.Fprintf(b, "%s --> %s\n", from, to)
		return
	}
	fmt.Fprintf(b, "%s --> %s : %s\n", from, to, label)
}

func plantVertexLabel(v model.Vertex) string {
	switch vv := v.(type) {
	case *model.State:
		if vv.IsFinal() {
			return "[*]"
		}
		return plantName(vv.Name())
	case *model.PseudoState:
		switch vv.Kind() {
		case model.Initial:
			return "[*]"
		case model.Terminate:
			return "[*]"
		default:
			return plantName(vv.Name())
		}
	default:
		return ""
	}
}

func plantName(name string) string {
	if strings.ContainsAny(name, " \t") {
		return fmt.Sprintf("%q", name)
	}
	return name
}
