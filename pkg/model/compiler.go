package model

import (
	"github.com/mxvane/statecraft/pkg/errs"
	"github.com/mxvane/statecraft/pkg/tree"
)

func ancestorsOf(v Vertex) []Element { return tree.Ancestors[Element](v) }

func lowestCommonAncestorIndex(a, b []Element) int {
	return tree.LowestCommonAncestorIndex(a, b)
}

// Compile walks the model once, depth-first, leaves first, assigning
// every Region, State, PseudoState, and Transition its compiled enter
// cascade (and, for Transitions, its traverse plan). It is safe to call
// directly; Initialise and Evaluate call it automatically whenever the
// machine is dirty and their autoCompile argument is true.
func Compile(sm *StateMachine) {
	compileState(sm.State)
	sm.onInitialise = compileStateEnter(sm.State)
	sm.clean = true
}

func compileState(s *State) {
	for _, r := range s.allRegions() {
		for _, v := range r.Vertices() {
			switch vv := v.(type) {
			case *State:
				compileState(vv)
			case *PseudoState:
				vv.compiledEnter = compilePseudoEnter(vv)
			}
			for _, t := range v.outgoing() {
				t.compiled = compileTransitionPlan(t)
			}
		}
		r.compiledEnter = compileRegionEnter(r)
	}
	s.compiledEnter = compileStateEnter(s)
	s.compiledExit = compileStateExit(s)
}

// --- Region enter cascade (4.D.1) ---

func compileRegionEnter(r *Region) []Step {
	return []Step{
		func(ex *Execution, deepHistory bool) error {
			last := ex.Instance.GetCurrent(r)
			initial := r.InitialVertex()
			useHistory := last != nil && (deepHistory || (initial != nil && initial.kind.isHistory()))
			if useHistory {
				next := deepHistory || (initial != nil && initial.kind == DeepHistory)
				return runSteps(ex, last.enterCascade(), next)
			}
			if initial == nil {
				return errs.NewIllFormedError(r.QualifiedName(), "region has no initial vertex")
			}
			next := deepHistory || initial.kind == DeepHistory
			return runSteps(ex, initial.enterCascade(), next)
		},
	}
}

// --- State enter/exit cascades (4.D.2, 4.D.3) ---

func compileStateEnter(s *State) []Step {
	var steps []Step
	steps = append(steps, stepMarkActiveAndNotify(s))
	for _, a := range s.entryBehavior {
		steps = append(steps, stepRunAction(s, "entry", a))
	}
	for _, region := range s.allRegions() {
		steps = append(steps, stepEnterRegion(region))
	}
	steps = append(steps, stepCheckCompletion(s))
	return steps
}

func compileStateExit(s *State) []Step {
	var steps []Step
	regions := s.allRegions()
	for i := len(regions) - 1; i >= 0; i-- {
		steps = append(steps, stepExitRegion(regions[i]))
	}
	for _, a := range s.exitBehavior {
		steps = append(steps, stepRunAction(s, "exit", a))
	}
	steps = append(steps, stepNotifyExit(s))
	return steps
}

func stepMarkActiveAndNotify(s *State) Step {
	return func(ex *Execution, _ bool) error {
		if r := s.region(); r != nil {
			ex.Instance.SetCurrent(r, s)
		}
		ex.Machine.notifyEnter(s)
		return nil
	}
}

func stepNotifyExit(s *State) Step {
	return func(ex *Execution, _ bool) error {
		ex.Machine.notifyExit(s)
		return nil
	}
}

func stepRunAction(el Element, phase string, a Action) Step {
	return func(ex *Execution, _ bool) error {
		if err := a(ex.Message, ex.Instance); err != nil {
			wrapped := errs.NewActionError(el.QualifiedName(), phase, err)
			ex.Machine.notifyError(wrapped)
			return wrapped
		}
		return nil
	}
}

func stepEnterRegion(region *Region) Step {
	return func(ex *Execution, deepHistory bool) error {
		return runSteps(ex, region.compiledEnter, deepHistory)
	}
}

func stepExitRegion(region *Region) Step {
	return func(ex *Execution, _ bool) error {
		cur := ex.Instance.GetCurrent(region)
		if cur == nil {
			return nil
		}
		return runSteps(ex, cur.exitCascade(), false)
	}
}

func stepCheckCompletion(s *State) Step {
	return func(ex *Execution, _ bool) error {
		if err := checkCompletion(ex, s); err != nil {
			return err
		}
		if s.IsFinal() {
			if r := s.region(); r != nil && r.owner != nil {
				return checkCompletion(ex, r.owner)
			}
		}
		return nil
	}
}

// checkCompletion implements 4.D.2(iv)/4.E.5: if s is now complete
// (simple, or every child region's current vertex is a FinalState) and
// it has completion transitions (transitions with no triggering
// message), fire the one whose guard is true.
func checkCompletion(ex *Execution, s *State) error {
	if !isComplete(s, ex.Instance) {
		return nil
	}
	var matched *Transition
	count := 0
	for _, t := range s.outgoing() {
		if !t.IsCompletion() {
			continue
		}
		if t.evalGuard(completionMessage, ex.Instance) {
			matched = t
			count++
		}
	}
	if count > 1 {
		return errs.NewIllFormedError(s.QualifiedName(), "multiple enabled completion transitions")
	}
	if count == 0 {
		return nil
	}
	ex.Machine.notifyCompletion(s)
	return executeTransition(ex, matched)
}

func isComplete(s *State, instance Instance) bool {
	regions := s.allRegions()
	if len(regions) == 0 {
		return true
	}
	for _, r := range regions {
		cur, ok := instance.GetCurrent(r).(*State)
		if !ok || !cur.IsFinal() {
			return false
		}
	}
	return true
}

// --- PseudoState enter cascades (4.D.4) ---

func compilePseudoEnter(p *PseudoState) []Step {
	switch {
	case p.kind.isInitial():
		return []Step{stepInitialPseudo(p)}
	case p.kind == Junction:
		return []Step{stepJunction(p)}
	case p.kind == Choice:
		return []Step{stepChoice(p)}
	case p.kind == Terminate:
		return []Step{stepTerminate(p)}
	default:
		return nil
	}
}

func stepInitialPseudo(p *PseudoState) Step {
	return func(ex *Execution, deepHistory bool) error {
		outs := p.outgoing()
		if len(outs) != 1 {
			return errs.NewIllFormedError(p.QualifiedName(), "initial pseudo state must have exactly one outgoing transition")
		}
		return executeTransition(ex, outs[0])
	}
}

func stepJunction(p *PseudoState) Step {
	return func(ex *Execution, _ bool) error {
		t, err := resolveGuardedTransition(p, ex, false)
		if err != nil {
			return err
		}
		return executeTransition(ex, t)
	}
}

func stepChoice(p *PseudoState) Step {
	return func(ex *Execution, _ bool) error {
		t, err := resolveGuardedTransition(p, ex, true)
		if err != nil {
			return err
		}
		return executeTransition(ex, t)
	}
}

func stepTerminate(p *PseudoState) Step {
	return func(ex *Execution, _ bool) error {
		ex.Instance.SetTerminated(true)
		return nil
	}
}

// resolveGuardedTransition implements the shared Junction/Choice guard
// evaluation: evaluate every outgoing guard once; for Junction, exactly
// one non-else guard may be true; for Choice, any number may be true and
// one is picked uniformly at random via the injectable random function.
// In both cases zero true guards falls back to the else transition, and
// no match at all is an ill-formed-machine error.
func resolveGuardedTransition(p *PseudoState, ex *Execution, randomTieBreak bool) (*Transition, error) {
	outs := p.outgoing()
	var matched []*Transition
	var elseT *Transition
	for _, t := range outs {
		if t.IsElse() {
			elseT = t
			continue
		}
		if t.evalGuard(ex.Message, ex.Instance) {
			matched = append(matched, t)
		}
	}
	switch {
	case len(matched) == 0:
		if elseT != nil {
			return elseT, nil
		}
		return nil, errs.NewIllFormedError(p.QualifiedName(), "no guard matched and no else transition")
	case len(matched) == 1:
		return matched[0], nil
	default:
		if !randomTieBreak {
			return nil, errs.NewIllFormedError(p.QualifiedName(), "multiple guards matched at a junction")
		}
		idx := ex.Config.Random(len(matched))
		if idx < 0 || idx >= len(matched) {
			idx = 0
		}
		return matched[idx], nil
	}
}

// --- Transition traverse plans (4.D.5) ---

type transitionPlan struct {
	ancestorsSrc []Element
	ancestorsDst []Element
	lca          int
}

func compileTransitionPlan(t *Transition) *transitionPlan {
	asrc := ancestorsOf(t.source)
	plan := &transitionPlan{ancestorsSrc: asrc, lca: -1}
	if t.target == nil {
		return plan
	}
	adst := ancestorsOf(t.target)
	lca := lowestCommonAncestorIndex(asrc, adst)
	// Self-transitions (target == source) conventionally exit and
	// re-enter the state itself rather than computing a degenerate LCA
	// equal to the state: shift the boundary up to the state's parent.
	if t.kind == External && asrc[len(asrc)-1] == adst[len(adst)-1] && lca == len(asrc)-1 {
		lca = len(asrc) - 2
	}
	plan.ancestorsDst = adst
	plan.lca = lca
	return plan
}

// executeTransition runs a compiled transition's traverse plan: it is
// the straight-line run-time walk the compiler's precomputation makes
// possible, without ever recomputing ancestry.
func executeTransition(ex *Execution, t *Transition) error {
	ex.Machine.notifyTransition(t, ex.Message)
	switch t.kind {
	case Internal:
		return executeInternal(ex, t)
	default:
		return executeExternalOrLocal(ex, t)
	}
}

func executeInternal(ex *Execution, t *Transition) error {
	if err := runEffect(ex, t); err != nil {
		return err
	}
	if ex.Config.InternalTransitionsTriggerCompletion {
		if st, ok := t.source.(*State); ok {
			return checkCompletion(ex, st)
		}
	}
	return nil
}

func executeExternalOrLocal(ex *Execution, t *Transition) error {
	plan := t.compiled
	// A pseudo-state source exits first, ahead of the branch exit below
	// (§4.D.5): it never has its own active substates to preserve, so
	// there is nothing for the branch exit to race against, but its own
	// exit cascade is the one exception to "only exit below the LCA".
	if ps, ok := t.source.(*PseudoState); ok {
		if plan.lca < 0 || Element(ps) != plan.ancestorsSrc[plan.lca] {
			if err := runSteps(ex, ps.exitCascade(), false); err != nil {
				return err
			}
		}
	}
	switch {
	case plan.lca >= 0 && plan.lca+1 < len(plan.ancestorsSrc):
		if err := exitBranch(ex, plan.ancestorsSrc[plan.lca+1]); err != nil {
			return err
		}
	case plan.lca == len(plan.ancestorsSrc)-1:
		// Local transition whose target is a proper descendant of its
		// source: the LCA is the source itself, so there is no branch
		// above it to exit, but its own currently-active substates still
		// need tearing down before entering toward target (§4.D.5 Local).
		if src, ok := t.source.(*State); ok {
			if err := exitActiveDescendants(ex, src); err != nil {
				return err
			}
		}
	}
	if err := runEffect(ex, t); err != nil {
		return err
	}
	return enterTarget(ex, t)
}

// exitActiveDescendants exits every currently-active vertex under s,
// deepest first, without exiting or notifying s itself.
func exitActiveDescendants(ex *Execution, s *State) error {
	regions := s.allRegions()
	for i := len(regions) - 1; i >= 0; i-- {
		if err := stepExitRegion(regions[i])(ex, false); err != nil {
			return err
		}
	}
	return nil
}

func runEffect(ex *Execution, t *Transition) error {
	for _, a := range t.effect {
		if err := a(ex.Message, ex.Instance); err != nil {
			wrapped := errs.NewActionError(t.source.QualifiedName(), "transition", err)
			ex.Machine.notifyError(wrapped)
			return wrapped
		}
	}
	return nil
}

func exitBranch(ex *Execution, node Element) error {
	switch n := node.(type) {
	case *State:
		return runSteps(ex, n.exitCascade(), false)
	case *Region:
		cur := ex.Instance.GetCurrent(n)
		if cur == nil {
			return nil
		}
		if err := runSteps(ex, cur.exitCascade(), false); err != nil {
			return err
		}
		// Unlike stepExitRegion (used when an owning State is itself
		// exited, where a stale current is exactly what history needs to
		// restore later), this region's owner stays active: the
		// transition lands in a sibling region, so nothing will
		// overwrite this entry on the way in. Clear it so the vacated
		// region doesn't keep reporting its old child as active.
		ex.Instance.SetCurrent(n, nil)
		return nil
	default:
		return nil
	}
}

func enterTarget(ex *Execution, t *Transition) error {
	plan := t.compiled
	if plan.lca < 0 || plan.lca+1 >= len(plan.ancestorsDst) {
		return runSteps(ex, t.target.enterCascade(), false)
	}
	return enterAlongPath(ex, plan.ancestorsDst, plan.lca+1, t.target)
}

// enterAlongPath walks the path from a diverging ancestor down to
// target, entering every State along the way with just its own
// mark-active/entry behavior (not the generic region loop, which would
// pick initial/history and override the path); any *other* sibling
// region of a composite/orthogonal state along the path still uses its
// normal region enter cascade, since the transition only names one
// branch explicitly. idx may land on either a State or a Region: a
// Region shows up whenever the diverging ancestor was a State (the
// Local-target-descendant case, and the External case between two
// orthogonal regions of the same state) — it is never itself "entered"
// (only the States and the final target are), so that case simply
// continues the walk one level deeper.
func enterAlongPath(ex *Execution, path []Element, idx int, target Vertex) error {
	if idx >= len(path)-1 {
		return runSteps(ex, target.enterCascade(), false)
	}
	switch node := path[idx].(type) {
	case *Region:
		return enterAlongPath(ex, path, idx+1, target)
	case *State:
		if err := runSteps(ex, []Step{stepMarkActiveAndNotify(node)}, false); err != nil {
			return err
		}
		for _, a := range node.entryBehavior {
			if err := a(ex.Message, ex.Instance); err != nil {
				wrapped := errs.NewActionError(node.QualifiedName(), "entry", err)
				ex.Machine.notifyError(wrapped)
				return wrapped
			}
		}
		nextRegion, _ := path[idx+1].(*Region)
		for _, region := range node.allRegions() {
			if region == nextRegion {
				if err := enterAlongPath(ex, path, idx+2, target); err != nil {
					return err
				}
				continue
			}
			if err := runSteps(ex, region.compiledEnter, false); err != nil {
				return err
			}
		}
		return checkCompletion(ex, node)
	default:
		return nil
	}
}
