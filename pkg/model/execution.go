package model

import "github.com/mxvane/statecraft/pkg/runtime"

// Execution bundles everything a compiled Step needs: the machine it
// belongs to, the instance it is mutating, the message that triggered
// this traversal (nil during Initialise), and the resolved runtime
// configuration.
type Execution struct {
	Machine  *StateMachine
	Instance Instance
	Message  *Message
	Config   runtime.Config
}

// Step is one compiled unit of an entry/exit cascade or a transition's
// traverse plan. deepHistory is only meaningful to region-entry steps;
// every other step ignores it.
type Step func(ex *Execution, deepHistory bool) error

func runSteps(ex *Execution, steps []Step, deepHistory bool) error {
	for _, step := range steps {
		if err := step(ex, deepHistory); err != nil {
			return err
		}
	}
	return nil
}
