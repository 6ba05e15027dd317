package model_test

import (
	"testing"

	"github.com/mxvane/statecraft/pkg/errs"
	"github.com/mxvane/statecraft/pkg/instance"
	"github.com/mxvane/statecraft/pkg/model"
	"github.com/mxvane/statecraft/pkg/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: a simple two-state toggle. Two "flip" messages return the machine
// to its starting configuration.
func TestScenario_SimpleToggle(t *testing.T) {
	sm := model.NewStateMachine("Toggle")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	off := model.NewState(sm.State, "Off")
	on := model.NewState(sm.State, "On")
	model.NewTransition(initial, off, "")
	model.NewTransition(off, on, "flip")
	model.NewTransition(on, off, "flip")
	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, model.IsActive(off, inst))
	assert.False(t, model.IsActive(on, inst))

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("flip"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.True(t, model.IsActive(on, inst))
	assert.False(t, model.IsActive(off, inst))

	consumed, err = model.Evaluate(sm, inst, model.NewMessage("flip"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.True(t, model.IsActive(off, inst))
	assert.False(t, model.IsActive(on, inst))
}

// Property: determinism. Replaying the same message sequence against a
// fresh instance of the same compiled machine reaches the same
// configuration every time.
func TestProperty_Determinism(t *testing.T) {
	sm := model.NewStateMachine("Toggle")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	off := model.NewState(sm.State, "Off")
	on := model.NewState(sm.State, "On")
	model.NewTransition(initial, off, "")
	model.NewTransition(off, on, "flip")
	model.NewTransition(on, off, "flip")
	model.Compile(sm)

	run := func() bool {
		inst := instance.New()
		require.NoError(t, model.Initialise(sm, inst, nil, false))
		for i := 0; i < 3; i++ {
			_, err := model.Evaluate(sm, inst, model.NewMessage("flip"), nil, false)
			require.NoError(t, err)
		}
		return model.IsActive(on, inst)
	}

	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}

// S2: orthogonal regions. Firing a transition in one region never
// disturbs the other region's active child.
func TestScenario_OrthogonalRegions(t *testing.T) {
	sm := model.NewStateMachine("Ortho")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	parallel := model.NewState(sm.State, "Parallel")
	model.NewTransition(initial, parallel, "")

	r1 := model.NewRegion(parallel, "R1")
	init1 := model.NewPseudoState(r1, "init1", model.Initial)
	a1 := model.NewState(r1, "A1")
	a2 := model.NewState(r1, "A2")
	model.NewTransition(init1, a1, "")
	model.NewTransition(a1, a2, "go1")

	r2 := model.NewRegion(parallel, "R2")
	init2 := model.NewPseudoState(r2, "init2", model.Initial)
	b1 := model.NewState(r2, "B1")
	b2 := model.NewState(r2, "B2")
	model.NewTransition(init2, b1, "")
	model.NewTransition(b1, b2, "go2")

	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, model.IsActive(a1, inst))
	assert.True(t, model.IsActive(b1, inst))

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("go1"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)

	// Property: active configuration invariant. Each region still has
	// exactly one active vertex, and the untouched region kept its own.
	assert.True(t, model.IsActive(a2, inst))
	assert.False(t, model.IsActive(a1, inst))
	assert.True(t, model.IsActive(b1, inst))
	assert.False(t, model.IsActive(b2, inst))
}

// S3: deep history. Leaving a nested composite and returning restores
// the innermost active leaf, not just the composite's direct child.
func TestScenario_DeepHistory(t *testing.T) {
	sm := model.NewStateMachine("Hist")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	other := model.NewState(sm.State, "Other")
	c := model.NewState(sm.State, "C")
	model.NewTransition(initial, c, "")
	model.NewTransition(c, other, "leave")
	model.NewTransition(other, c, "return")

	historyC := model.NewPseudoState(c, "historyC", model.DeepHistory)
	d := model.NewState(c, "D")
	model.NewTransition(historyC, d, "")

	initD := model.NewPseudoState(d, "initD", model.Initial)
	p := model.NewState(d, "P")
	q := model.NewState(d, "Q")
	model.NewTransition(initD, p, "")
	model.NewTransition(p, q, "next")

	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, model.IsActive(p, inst))

	_, err := model.Evaluate(sm, inst, model.NewMessage("next"), nil, false)
	require.NoError(t, err)
	assert.True(t, model.IsActive(q, inst))

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("leave"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.True(t, model.IsActive(other, inst))

	consumed, err = model.Evaluate(sm, inst, model.NewMessage("return"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)

	// Property: history restoration. Q, not P, is active again.
	assert.True(t, model.IsActive(q, inst))
	assert.False(t, model.IsActive(p, inst))
}

// Contrast: a ShallowHistory entry point only restores the direct
// child, so a nested grandchild resets to its own region's initial.
func TestScenario_ShallowHistoryOnlyRestoresOneLevel(t *testing.T) {
	sm := model.NewStateMachine("ShallowHist")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	other := model.NewState(sm.State, "Other")
	c := model.NewState(sm.State, "C")
	model.NewTransition(initial, c, "")
	model.NewTransition(c, other, "leave")
	model.NewTransition(other, c, "return")

	historyC := model.NewPseudoState(c, "historyC", model.ShallowHistory)
	d := model.NewState(c, "D")
	model.NewTransition(historyC, d, "")

	initD := model.NewPseudoState(d, "initD", model.Initial)
	p := model.NewState(d, "P")
	q := model.NewState(d, "Q")
	model.NewTransition(initD, p, "")
	model.NewTransition(p, q, "next")

	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	_, err := model.Evaluate(sm, inst, model.NewMessage("next"), nil, false)
	require.NoError(t, err)
	assert.True(t, model.IsActive(q, inst))

	_, err = model.Evaluate(sm, inst, model.NewMessage("leave"), nil, false)
	require.NoError(t, err)
	_, err = model.Evaluate(sm, inst, model.NewMessage("return"), nil, false)
	require.NoError(t, err)

	// D itself is restored (shallow history holds at the C level), but D's
	// own region re-runs its Initial pseudo state rather than remembering Q.
	assert.True(t, model.IsActive(p, inst))
	assert.False(t, model.IsActive(q, inst))
}

// S4: Choice selects among several true guards via the injectable random
// function, deterministically for a given seed.
func TestScenario_ChoiceUsesInjectableRandom(t *testing.T) {
	sm := model.NewStateMachine("ChoiceDemo")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	choice := model.NewPseudoState(sm.State, "choice", model.Choice)
	branchA := model.NewState(sm.State, "BranchA")
	branchB := model.NewState(sm.State, "BranchB")
	model.NewTransition(initial, choice, "")
	alwaysTrue := func(*model.Message, model.Instance) bool { return true }
	model.NewTransition(choice, branchA, "").When(alwaysTrue)
	model.NewTransition(choice, branchB, "").When(alwaysTrue)
	model.Compile(sm)

	pickSecond := &runtime.Config{Random: func(max int) int { return 1 }}
	instB := instance.New()
	require.NoError(t, model.Initialise(sm, instB, pickSecond, false))
	assert.True(t, model.IsActive(branchB, instB))
	assert.False(t, model.IsActive(branchA, instB))

	pickFirst := &runtime.Config{Random: func(max int) int { return 0 }}
	instA := instance.New()
	require.NoError(t, model.Initialise(sm, instA, pickFirst, false))
	assert.True(t, model.IsActive(branchA, instA))
	assert.False(t, model.IsActive(branchB, instA))
}

// Property: Choice fairness. Every matched guard is reachable, not just
// the first one declared, given an appropriate random selection.
func TestProperty_ChoiceFairness(t *testing.T) {
	sm := model.NewStateMachine("ChoiceFair")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	choice := model.NewPseudoState(sm.State, "choice", model.Choice)
	branchA := model.NewState(sm.State, "BranchA")
	branchB := model.NewState(sm.State, "BranchB")
	branchC := model.NewState(sm.State, "BranchC")
	model.NewTransition(initial, choice, "")
	alwaysTrue := func(*model.Message, model.Instance) bool { return true }
	model.NewTransition(choice, branchA, "").When(alwaysTrue)
	model.NewTransition(choice, branchB, "").When(alwaysTrue)
	model.NewTransition(choice, branchC, "").When(alwaysTrue)
	model.Compile(sm)

	reached := map[int]bool{}
	for idx := 0; idx < 3; idx++ {
		i := idx
		cfg := &runtime.Config{Random: func(max int) int { return i }}
		inst := instance.New()
		require.NoError(t, model.Initialise(sm, inst, cfg, false))
		switch {
		case model.IsActive(branchA, inst):
			reached[0] = true
		case model.IsActive(branchB, inst):
			reached[1] = true
		case model.IsActive(branchC, inst):
			reached[2] = true
		}
	}
	assert.Len(t, reached, 3)
}

// S5: a Junction where more than one guard is true and no else
// transition exists is an ill-formed machine, reported as an error
// rather than resolved silently.
func TestScenario_JunctionAmbiguousIsIllFormed(t *testing.T) {
	sm := model.NewStateMachine("JunctionBad")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	junction := model.NewPseudoState(sm.State, "junction", model.Junction)
	a := model.NewState(sm.State, "A")
	b := model.NewState(sm.State, "B")
	model.NewTransition(initial, junction, "")
	alwaysTrue := func(*model.Message, model.Instance) bool { return true }
	model.NewTransition(junction, a, "").When(alwaysTrue)
	model.NewTransition(junction, b, "").When(alwaysTrue)
	model.Compile(sm)

	inst := instance.New()
	err := model.Initialise(sm, inst, nil, false)
	require.Error(t, err)
	assert.True(t, errs.IsIllFormedError(err))
	assert.False(t, model.IsActive(a, inst))
	assert.False(t, model.IsActive(b, inst))
}

// S6: Terminate absorbs all further input. Once reached, the instance is
// marked terminated and subsequent messages are silently dropped with no
// actions invoked.
func TestScenario_TerminateAbsorbsInput(t *testing.T) {
	sm := model.NewStateMachine("Term")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	terminate := model.NewPseudoState(sm.State, "terminate", model.Terminate)
	unreached := model.NewState(sm.State, "Unreached")
	calls := 0
	unreached.AddEntry(func(*model.Message, model.Instance) error {
		calls++
		return nil
	})
	model.NewTransition(initial, terminate, "")
	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, inst.IsTerminated())

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("anything"), nil, false)
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.Equal(t, 0, calls)
}

// Property: completion chain. A composite state whose single region
// reaches a FinalState completes automatically and, if it in turn has a
// completion transition, the chain continues without an external
// message.
func TestProperty_CompletionChain(t *testing.T) {
	sm := model.NewStateMachine("Completion")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	work := model.NewState(sm.State, "Work")
	next := model.NewState(sm.State, "Next")
	model.NewTransition(initial, work, "")
	model.NewTransition(work, next, "") // completion transition, no message

	wInit := model.NewPseudoState(work, "wInit", model.Initial)
	task := model.NewState(work, "Task")
	doneTask := model.NewFinalState(work, "DoneTask")
	model.NewTransition(wInit, task, "")
	model.NewTransition(task, doneTask, "finish")

	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, model.IsActive(task, inst))

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("finish"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.True(t, model.IsActive(next, inst))
}

// Property: LCA traversal count. A transition between two children of
// the same composite state exits and enters only below their lowest
// common ancestor; the shared ancestor itself is neither re-exited nor
// re-entered.
func TestProperty_LCATraversalStopsAtCommonAncestor(t *testing.T) {
	sm := model.NewStateMachine("LCA")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	comp := model.NewState(sm.State, "Comp")
	model.NewTransition(initial, comp, "")

	var trace []string
	comp.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter Comp")
		return nil
	})
	comp.AddExit(func(*model.Message, model.Instance) error {
		trace = append(trace, "exit Comp")
		return nil
	})

	compInit := model.NewPseudoState(comp, "compInit", model.Initial)
	leaf1 := model.NewState(comp, "Leaf1")
	leaf1.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter Leaf1")
		return nil
	})
	leaf1.AddExit(func(*model.Message, model.Instance) error {
		trace = append(trace, "exit Leaf1")
		return nil
	})
	leaf2 := model.NewState(comp, "Leaf2")
	leaf2.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter Leaf2")
		return nil
	})
	model.NewTransition(compInit, leaf1, "")
	model.NewTransition(leaf1, leaf2, "hop")
	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	trace = nil // only examine the "hop" transition's own traversal

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("hop"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)

	assert.Equal(t, []string{"exit Leaf1", "enter Leaf2"}, trace)
	assert.True(t, model.IsActive(leaf2, inst))
}

// A reflexive self-transition (target == source) exits and re-enters
// the state, running both its exit and its entry behavior.
func TestScenario_SelfTransitionExitsAndReenters(t *testing.T) {
	sm := model.NewStateMachine("SelfTransition")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	a := model.NewState(sm.State, "A")

	var trace []string
	a.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter A")
		return nil
	})
	a.AddExit(func(*model.Message, model.Instance) error {
		trace = append(trace, "exit A")
		return nil
	})

	model.NewTransition(initial, a, "")
	model.NewTransition(a, a, "reset")
	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.Equal(t, []string{"enter A"}, trace)
	trace = nil

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("reset"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, []string{"exit A", "enter A"}, trace)
	assert.True(t, model.IsActive(a, inst))
}

// A Local transition whose target is a proper descendant of its source
// tears down whatever was previously active below the source and then
// enters explicitly down to the named descendant, without re-entering
// the source itself.
func TestScenario_LocalTransitionToDescendant(t *testing.T) {
	sm := model.NewStateMachine("LocalDescendant")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	comp := model.NewState(sm.State, "Comp")
	model.NewTransition(initial, comp, "")

	var trace []string
	comp.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter Comp")
		return nil
	})
	comp.AddExit(func(*model.Message, model.Instance) error {
		trace = append(trace, "exit Comp")
		return nil
	})

	compInit := model.NewPseudoState(comp, "compInit", model.Initial)
	inner := model.NewState(comp, "Inner")
	inner.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter Inner")
		return nil
	})
	inner.AddExit(func(*model.Message, model.Instance) error {
		trace = append(trace, "exit Inner")
		return nil
	})
	model.NewTransition(compInit, inner, "")

	innerInit := model.NewPseudoState(inner, "innerInit", model.Initial)
	leafA := model.NewState(inner, "LeafA")
	leafA.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter LeafA")
		return nil
	})
	leafA.AddExit(func(*model.Message, model.Instance) error {
		trace = append(trace, "exit LeafA")
		return nil
	})
	leafB := model.NewState(inner, "LeafB")
	leafB.AddEntry(func(*model.Message, model.Instance) error {
		trace = append(trace, "enter LeafB")
		return nil
	})
	model.NewTransition(innerInit, leafA, "")

	// Local: target (LeafB) is a descendant of source (Comp).
	model.NewTransition(comp, leafB, "jump")

	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, model.IsActive(leafA, inst))
	trace = nil

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("jump"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)

	// Comp itself is never re-entered (it was already active); its
	// previously active descendants (Inner, LeafA) are torn down, and
	// the walk down to LeafB re-enters Inner along the way.
	assert.Equal(t, []string{"exit LeafA", "exit Inner", "enter Inner", "enter LeafB"}, trace)
	assert.True(t, model.IsActive(leafB, inst))
	assert.False(t, model.IsActive(leafA, inst))
}

// An External transition between two orthogonal regions of the same
// composite state exits the source region's active child and enters
// the target directly within its own sibling region, without
// disturbing the shared owning state or any other region.
func TestScenario_ExternalTransitionBetweenOrthogonalRegions(t *testing.T) {
	sm := model.NewStateMachine("OrthoJump")
	initial := model.NewPseudoState(sm.State, "initial", model.Initial)
	ortho := model.NewState(sm.State, "Ortho")
	model.NewTransition(initial, ortho, "")

	r1 := model.NewRegion(ortho, "R1")
	init1 := model.NewPseudoState(r1, "init1", model.Initial)
	x1 := model.NewState(r1, "X1")
	model.NewTransition(init1, x1, "")

	r2 := model.NewRegion(ortho, "R2")
	init2 := model.NewPseudoState(r2, "init2", model.Initial)
	y1 := model.NewState(r2, "Y1")
	y2 := model.NewState(r2, "Y2")
	model.NewTransition(init2, y1, "")

	// External: X1 and Y2 share only Ortho as a common ancestor, one
	// region apiece below it.
	model.NewTransition(x1, y2, "jump")

	model.Compile(sm)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, model.IsActive(x1, inst))
	assert.True(t, model.IsActive(y1, inst))

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("jump"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)

	assert.True(t, model.IsActive(y2, inst))
	assert.False(t, model.IsActive(y1, inst))
	assert.False(t, model.IsActive(x1, inst))
}
