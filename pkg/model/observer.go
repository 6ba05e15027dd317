package model

// Observer is notified of lifecycle events during Initialise/Evaluate.
// The interface lives here (rather than in pkg/observers, where the
// concrete implementations live) because StateMachine.notify* needs to
// call it without pkg/observers importing back into pkg/model.
type Observer interface {
	OnEnter(el Element)
	OnExit(el Element)
	OnTransition(t *Transition, msg *Message)
	OnCompletion(s *State)
	OnError(err error)
}
