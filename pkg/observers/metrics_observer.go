package observers

import (
	"sync"
	"time"

	"github.com/mxvane/statecraft/pkg/model"
)

// MetricsObserver collects metrics about state machine execution
type MetricsObserver struct {
	stateVisits      map[string]int
	stateTimeSpent   map[string]time.Duration
	messageCounts    map[string]int
	transitionCounts map[string]int
	completionCounts map[string]int
	errorCount       int
	lastStateEntry   map[string]time.Time
	mutex            sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		stateVisits:      make(map[string]int),
		stateTimeSpent:   make(map[string]time.Duration),
		messageCounts:    make(map[string]int),
		transitionCounts: make(map[string]int),
		completionCounts: make(map[string]int),
		lastStateEntry:   make(map[string]time.Time),
	}
}

// OnEnter records state/pseudo-state entry metrics
func (o *MetricsObserver) OnEnter(el model.Element) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	name := el.QualifiedName()
	o.stateVisits[name]++
	o.lastStateEntry[name] = time.Now()
}

// OnExit records state exit metrics
func (o *MetricsObserver) OnExit(el model.Element) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	name := el.QualifiedName()
	if entryTime, ok := o.lastStateEntry[name]; ok {
		o.stateTimeSpent[name] += time.Since(entryTime)
		delete(o.lastStateEntry, name)
	}
}

// OnTransition records transition and message metrics
func (o *MetricsObserver) OnTransition(t *model.Transition, msg *model.Message) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	toName := "<none>"
	if t.Target() != nil {
		toName = t.Target().QualifiedName()
	}
	transitionKey := t.Source().QualifiedName() + "->" + toName
	o.transitionCounts[transitionKey]++

	if msg != nil && msg.Name != "" {
		o.messageCounts[msg.Name]++
	}
}

// OnCompletion records a state reaching completion
func (o *MetricsObserver) OnCompletion(s *model.State) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.completionCounts[s.QualifiedName()]++
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetStateVisitCounts returns the number of times each state was visited
func (o *MetricsObserver) GetStateVisitCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for state, count := range o.stateVisits {
		result[state] = count
	}
	return result
}

// GetStateTimeSpent returns the time spent in each state
func (o *MetricsObserver) GetStateTimeSpent() map[string]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]time.Duration)
	for state, duration := range o.stateTimeSpent {
		result[state] = duration
	}
	return result
}

// GetMessageCounts returns the number of times each message was consumed
func (o *MetricsObserver) GetMessageCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for message, count := range o.messageCounts {
		result[message] = count
	}
	return result
}

// GetTransitionCounts returns the number of times each transition occurred
func (o *MetricsObserver) GetTransitionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for transition, count := range o.transitionCounts {
		result[transition] = count
	}
	return result
}

// GetCompletionCounts returns the number of times each state completed
func (o *MetricsObserver) GetCompletionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for state, count := range o.completionCounts {
		result[state] = count
	}
	return result
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stateVisits = make(map[string]int)
	o.stateTimeSpent = make(map[string]time.Duration)
	o.messageCounts = make(map[string]int)
	o.transitionCounts = make(map[string]int)
	o.completionCounts = make(map[string]int)
	o.errorCount = 0
	o.lastStateEntry = make(map[string]time.Time)
}
