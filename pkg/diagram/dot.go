// Package diagram renders a compiled state machine as Graphviz DOT or
// PlantUML text, for visual inspection of what a model built.
package diagram

import (
	"fmt"
	"strings"

	"github.com/mxvane/statecraft/pkg/model"
)

// DOTOptions configures the DOT rendering.
type DOTOptions struct {
	RankDirection string // "TB", "LR", "BT", "RL"
	ShowGuards    bool
}

// DefaultDOTOptions returns sensible default rendering options.
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{RankDirection: "TB", ShowGuards: true}
}

// ExportDOT renders sm as a Graphviz DOT digraph.
func ExportDOT(sm *model.StateMachine, options ...DOTOptions) string {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quoteID(sm.Name()))
	fmt.Fprintf(&b, "  rankdir=%s;\n", opts.RankDirection)
	b.WriteString("  node [shape=box];\n\n")

	b.WriteString("  // Vertices\n")
	walkVertices(sm.State, func(v model.Vertex) {
		writeVertexNode(&b, v)
	})

	b.WriteString("\n  // Transitions\n")
	walkVertices(sm.State, func(v model.Vertex) {
		for _, t := range outgoingOf(v) {
			writeEdge(&b, t, opts)
		}
	})

	b.WriteString("}\n")
	return b.String()
}

func outgoingOf(v model.Vertex) []*model.Transition {
	switch vv := v.(type) {
	case *model.State:
		return vv.Outgoing()
	case *model.PseudoState:
		return vv.Outgoing()
	default:
		return nil
	}
}

func writeVertexNode(b *strings.Builder, v model.Vertex) {
	switch vv := v.(type) {
	case *model.State:
		shape, fill := "box", "lightblue"
		switch {
		case vv.IsFinal():
			shape, fill = "doublecircle", "lightcoral"
		case vv.IsOrthogonal():
			shape, fill = "box,peripheries=2", "lavender"
		case vv.IsComposite():
			shape, fill = "box,style=rounded", "lightcyan"
		}
		fmt.Fprintf(b, "  %s [shape=%q style=\"filled\" fillcolor=%s label=%q];\n",
			quoteID(vv.QualifiedName()), shape, fill, vv.Name())
	case *model.PseudoState:
		fmt.Fprintf(b, "  %s [shape=circle style=\"filled\" fillcolor=lightyellow label=%q];\n",
			quoteID(vv.QualifiedName()), fmt.Sprintf("%s\n[%s]", vv.Name(), vv.Kind()))
	}
}

func writeEdge(b *strings.Builder, t *model.Transition, opts DOTOptions) {
	target := t.Target()
	if target == nil {
		return
	}
	label := t.Message()
	if label == "" {
		label = "completion"
	}
	if opts.ShowGuards && t.IsElse() {
		label += " [else]"
	}
	fmt.Fprintf(b, "  %s -> %s [label=%q];\n",
		quoteID(qualifiedNameOf(t.Source())), quoteID(qualifiedNameOf(target)), label)
}

func qualifiedNameOf(v model.Vertex) string {
	switch vv := v.(type) {
	case *model.State:
		return vv.QualifiedName()
	case *model.PseudoState:
		return vv.QualifiedName()
	default:
		return ""
	}
}

func quoteID(s string) string {
	return fmt.Sprintf("%q", s)
}

// walkVertices visits root and every descendant vertex, depth first.
func walkVertices(root *model.State, visit func(model.Vertex)) {
	visit(root)
	var descend func(s *model.State)
	descend = func(s *model.State) {
		for _, r := range s.Regions() {
			for _, v := range r.Vertices() {
				visit(v)
				if child, ok := v.(*model.State); ok {
					descend(child)
				}
			}
		}
	}
	descend(root)
}
