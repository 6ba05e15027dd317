package builders

import (
	"fmt"

	"github.com/mxvane/statecraft/pkg/model"
)

// WorkflowBuilder is a thin shorthand over StateMachineBuilder for the
// common case of a linear pipeline of steps, with occasional choice
// branches, ending in a final state.
type WorkflowBuilder struct {
	*StateMachineBuilder
	stepCount  int
	lastStep   string
	hasInitial bool
}

// NewWorkflowBuilder creates a new workflow builder.
func NewWorkflowBuilder(name string) *WorkflowBuilder {
	return &WorkflowBuilder{StateMachineBuilder: NewStateMachineBuilder(name)}
}

// AddStep adds the next sequential step, wiring a "NEXT"-triggered
// transition in from the previous step, or an Initial pseudostate if
// this is the first step.
func (w *WorkflowBuilder) AddStep(name string, entry model.Action) *WorkflowBuilder {
	stepName := fmt.Sprintf("step_%d_%s", w.stepCount, name)
	w.AddState("", stepName)
	if entry != nil {
		w.WithEntryAction(entry)
	}

	if !w.hasInitial {
		w.AddPseudoState("", "initial", model.Initial)
		w.AddTransition("initial", stepName, "")
		w.hasInitial = true
	} else {
		w.AddTransition(w.lastStep, stepName, "NEXT")
	}

	w.lastStep = stepName
	w.stepCount++
	return w
}

// AddChoiceBranch inserts a Choice pseudostate after the last step,
// dispatching to one destination state per guarded condition. The
// destination states get no outgoing transitions: a following AddStep
// or Finish is wired from the choice pseudostate itself.
func (w *WorkflowBuilder) AddChoiceBranch(name string, branches map[string]model.Guard) *WorkflowBuilder {
	choiceName := fmt.Sprintf("choice_%s", name)
	w.AddPseudoState("", choiceName, model.Choice)
	w.AddTransition(w.lastStep, choiceName, "NEXT")

	for destName, guard := range branches {
		w.AddState("", destName)
		tb := w.AddTransition(choiceName, destName, "")
		if guard != nil {
			tb.WithGuard(guard)
		}
	}

	w.lastStep = choiceName
	return w
}

// Finish adds a FinalState and wires a "COMPLETE"-triggered transition
// from the last step into it.
func (w *WorkflowBuilder) Finish() *WorkflowBuilder {
	w.AddFinalState("", "completed")
	w.AddTransition(w.lastStep, "completed", "COMPLETE")
	return w
}
