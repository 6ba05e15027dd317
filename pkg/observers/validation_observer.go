package observers

import (
	"fmt"
	"sync"

	"github.com/mxvane/statecraft/pkg/model"
)

// ValidationObserver watches a running machine and records violations of
// expectations the test/author registered up front: states that should
// have been visited, and transitions that should never occur.
type ValidationObserver struct {
	expectedStates     map[string]bool
	visitedStates      map[string]bool
	allowedTransitions map[string]map[string]bool
	violations         []string
	mutex              sync.RWMutex
}

// NewValidationObserver creates a new validation observer
func NewValidationObserver() *ValidationObserver {
	return &ValidationObserver{
		expectedStates:     make(map[string]bool),
		visitedStates:      make(map[string]bool),
		allowedTransitions: make(map[string]map[string]bool),
		violations:         make([]string, 0),
	}
}

// AddExpectedState adds an expected state, identified by qualified name
func (o *ValidationObserver) AddExpectedState(qualifiedName string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.expectedStates[qualifiedName] = true
}

// AddAllowedTransition adds an allowed transition between two qualified names
func (o *ValidationObserver) AddAllowedTransition(from, to string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, exists := o.allowedTransitions[from]; !exists {
		o.allowedTransitions[from] = make(map[string]bool)
	}

	o.allowedTransitions[from][to] = true
}

// addViolation adds a violation
func (o *ValidationObserver) addViolation(message string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.violations = append(o.violations, message)
}

// OnEnter marks an element as visited.
func (o *ValidationObserver) OnEnter(el model.Element) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.visitedStates[el.QualifiedName()] = true
}

// OnExit needs no validation.
func (o *ValidationObserver) OnExit(el model.Element) {
	// No validation needed for exit
}

// OnTransition flags a traversal that wasn't on the allow-list, if one
// was registered for its source.
func (o *ValidationObserver) OnTransition(t *model.Transition, msg *model.Message) {
	if t.Target() == nil {
		return
	}

	fromName := t.Source().QualifiedName()
	toName := t.Target().QualifiedName()

	o.mutex.Lock()
	defer o.mutex.Unlock()

	if allowed, exists := o.allowedTransitions[fromName]; exists {
		if !allowed[toName] {
			name := "<completion>"
			if msg != nil && msg.Name != "" {
				name = msg.Name
			}
			o.violations = append(o.violations, fmt.Sprintf(
				"Invalid transition from '%s' to '%s' on message '%s'",
				fromName, toName, name))
		}
	}
}

// OnCompletion needs no validation.
func (o *ValidationObserver) OnCompletion(s *model.State) {
	// No validation needed for completion
}

// OnError records the error as a violation.
func (o *ValidationObserver) OnError(err error) {
	o.addViolation(fmt.Sprintf("Error occurred: %v", err))
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// GetUnvisitedStates returns states that were expected but not visited
func (o *ValidationObserver) GetUnvisitedStates() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var unvisited []string
	for state := range o.expectedStates {
		if !o.visitedStates[state] {
			unvisited = append(unvisited, state)
		}
	}

	return unvisited
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedStates = make(map[string]bool)
	o.violations = make([]string, 0)
}
