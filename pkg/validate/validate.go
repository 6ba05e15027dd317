// Package validate performs non-fatal structural checks over a model,
// reporting anything it finds through a runtime.Console instead of
// raising an error: an ill-formed machine still compiles and evaluates
// according to spec.md §4.D/§4.E (a malformed Junction, say, only
// surfaces as an IllFormedError the moment it's actually traversed).
// Check exists to catch that class of mistake earlier, at authoring
// time, the way a linter would.
package validate

import (
	"fmt"

	"github.com/mxvane/statecraft/pkg/model"
	"github.com/mxvane/statecraft/pkg/runtime"
)

// Diagnostic is a single non-fatal structural finding.
type Diagnostic struct {
	Element string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Element, d.Message)
}

// Check walks sm's full containment tree and returns every structural
// diagnostic it finds, also writing each one to console.Warn (if
// console is non-nil).
func Check(sm *model.StateMachine, console runtime.Console) []Diagnostic {
	var diags []Diagnostic
	checkState(sm.State, &diags)
	if console != nil {
		for _, d := range diags {
			console.Warn("%s", d.String())
		}
	}
	return diags
}

func checkState(s *model.State, diags *[]Diagnostic) {
	if s.IsFinal() && len(s.Outgoing()) > 0 {
		*diags = append(*diags, Diagnostic{
			Element: s.QualifiedName(),
			Message: "final state has outgoing transitions, which will never fire",
		})
	}

	for _, r := range s.Regions() {
		checkRegion(r, diags)
	}
}

func checkRegion(r *model.Region, diags *[]Diagnostic) {
	initialCount := 0
	for _, v := range r.Vertices() {
		switch vv := v.(type) {
		case *model.State:
			checkState(vv, diags)
		case *model.PseudoState:
			checkPseudoState(vv, diags)
			if vv.Kind() == model.Initial || vv.Kind() == model.ShallowHistory || vv.Kind() == model.DeepHistory {
				initialCount++
			}
		}
	}
	if initialCount == 0 {
		*diags = append(*diags, Diagnostic{
			Element: r.QualifiedName(),
			Message: "region has no Initial/History pseudo state",
		})
	}
	if initialCount > 1 {
		*diags = append(*diags, Diagnostic{
			Element: r.QualifiedName(),
			Message: "region has more than one Initial/History pseudo state",
		})
	}
}

func checkPseudoState(p *model.PseudoState, diags *[]Diagnostic) {
	out := p.Outgoing()
	switch p.Kind() {
	case model.Initial, model.ShallowHistory, model.DeepHistory:
		if len(out) != 1 {
			*diags = append(*diags, Diagnostic{
				Element: p.QualifiedName(),
				Message: "initial/history pseudo state must have exactly one outgoing transition",
			})
		}
	case model.Junction, model.Choice:
		if len(out) == 0 {
			*diags = append(*diags, Diagnostic{
				Element: p.QualifiedName(),
				Message: "junction/choice pseudo state has no outgoing transitions",
			})
		}
		elseCount := 0
		for _, t := range out {
			if t.IsElse() {
				elseCount++
			}
		}
		if elseCount > 1 {
			*diags = append(*diags, Diagnostic{
				Element: p.QualifiedName(),
				Message: "junction/choice pseudo state has more than one else transition",
			})
		}
	case model.Terminate:
		if len(out) != 0 {
			*diags = append(*diags, Diagnostic{
				Element: p.QualifiedName(),
				Message: "terminate pseudo state must have no outgoing transitions",
			})
		}
	}
}
