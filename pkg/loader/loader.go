// Package loader builds a state machine from a declarative YAML
// document instead of Go builder calls, for callers that want to keep
// their model data-driven. It compiles straight down into pkg/builders
// — it does not redefine any model semantics of its own.
package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/mxvane/statecraft/pkg/builders"
	"github.com/mxvane/statecraft/pkg/model"
	"gopkg.in/yaml.v3"
)

// TransitionSpec describes one outgoing transition of a state, keyed
// by the event name that triggers it ("" for a completion transition).
type TransitionSpec struct {
	Event  string `yaml:"event"`
	Target string `yaml:"target"`
	Guard  string `yaml:"guard,omitempty"`
	Effect string `yaml:"effect,omitempty"`
	Else   bool   `yaml:"else,omitempty"`
}

// StateSpec describes one vertex. Type selects how it's constructed;
// Kind additionally selects the PseudoKind when Type is "pseudo".
type StateSpec struct {
	ID          string           `yaml:"id"`
	Type        string           `yaml:"type"` // "state", "final", "pseudo"
	Kind        string           `yaml:"kind,omitempty"`
	Entry       string           `yaml:"entry,omitempty"`
	Exit        string           `yaml:"exit,omitempty"`
	Regions     []RegionSpec     `yaml:"regions,omitempty"`
	Transitions []TransitionSpec `yaml:"transitions,omitempty"`
}

// RegionSpec describes one named child region of an orthogonal state.
type RegionSpec struct {
	Name   string      `yaml:"name"`
	States []StateSpec `yaml:"states"`
}

// Spec is the YAML document shape accepted by Load: a named machine
// whose root region's states are declared flat, addressed by the
// author-facing builder path convention (see pkg/builders).
type Spec struct {
	Name   string      `yaml:"name"`
	States []StateSpec `yaml:"states"`
}

// Registry resolves the string names a Spec uses for guards/actions
// into the closures the model actually runs.
type Registry struct {
	Guards  map[string]model.Guard
	Actions map[string]model.Action
}

var pseudoKinds = map[string]model.PseudoKind{
	"initial":        model.Initial,
	"shallowHistory": model.ShallowHistory,
	"deepHistory":    model.DeepHistory,
	"junction":       model.Junction,
	"choice":         model.Choice,
	"terminate":      model.Terminate,
}

// Load parses a YAML document into a constructed and compiled
// StateMachine, resolving guard/action names against reg.
func Load(r io.Reader, reg Registry) (*model.StateMachine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read spec: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("loader: parse spec: %w", err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("loader: machine name is required")
	}

	b := builders.NewStateMachineBuilder(spec.Name)
	if err := addStates(b, "", spec.States, reg); err != nil {
		return nil, err
	}
	if err := addTransitions(b, "", spec.States, reg); err != nil {
		return nil, err
	}

	sm, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("loader: build: %w", err)
	}
	return sm, nil
}

func addStates(b *builders.StateMachineBuilder, parentPath string, states []StateSpec, reg Registry) error {
	for _, s := range states {
		switch s.Type {
		case "", "state":
			b.AddState(parentPath, s.ID)
			if s.Entry != "" {
				a, ok := reg.Actions[s.Entry]
				if !ok {
					return fmt.Errorf("loader: unknown entry action %q for state %q", s.Entry, s.ID)
				}
				b.WithEntryAction(a)
			}
			if s.Exit != "" {
				a, ok := reg.Actions[s.Exit]
				if !ok {
					return fmt.Errorf("loader: unknown exit action %q for state %q", s.Exit, s.ID)
				}
				b.WithExitAction(a)
			}
			statePath := join(parentPath, s.ID)
			for _, region := range s.Regions {
				b.AddRegion(statePath, region.Name)
				regionPath := join(statePath, region.Name)
				if err := addStates(b, regionPath, region.States, reg); err != nil {
					return err
				}
				if err := addTransitions(b, regionPath, region.States, reg); err != nil {
					return err
				}
			}
		case "final":
			b.AddFinalState(parentPath, s.ID)
		case "pseudo":
			kind, ok := pseudoKinds[s.Kind]
			if !ok {
				return fmt.Errorf("loader: unknown pseudostate kind %q for %q", s.Kind, s.ID)
			}
			b.AddPseudoState(parentPath, s.ID, kind)
		default:
			return fmt.Errorf("loader: unknown state type %q for %q", s.Type, s.ID)
		}
	}
	return nil
}

func addTransitions(b *builders.StateMachineBuilder, parentPath string, states []StateSpec, reg Registry) error {
	for _, s := range states {
		fromPath := join(parentPath, s.ID)
		for _, ts := range s.Transitions {
			toPath := ts.Target
			if !strings.Contains(toPath, ".") {
				toPath = join(parentPath, ts.Target)
			}
			tb := b.AddTransition(fromPath, toPath, ts.Event)
			if ts.Guard != "" {
				g, ok := reg.Guards[ts.Guard]
				if !ok {
					return fmt.Errorf("loader: unknown guard %q on transition %s -> %s", ts.Guard, s.ID, ts.Target)
				}
				tb.WithGuard(g)
			}
			if ts.Effect != "" {
				a, ok := reg.Actions[ts.Effect]
				if !ok {
					return fmt.Errorf("loader: unknown effect action %q on transition %s -> %s", ts.Effect, s.ID, ts.Target)
				}
				tb.WithEffect(a)
			}
			if ts.Else {
				tb.AsElse()
			}
		}
	}
	return nil
}

func join(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "." + name
}
