// Package errs defines the typed error family raised by the model graph
// and the runtime evaluator.
package errs

import "fmt"

// ErrorCode identifies the broad class of a raised error.
type ErrorCode int

const (
	// CodeModel marks a construction-time invariant violation.
	CodeModel ErrorCode = iota
	// CodeIllFormed marks a runtime ill-formed-machine condition.
	CodeIllFormed
	// CodeAction marks a propagated failure from a user guard/effect/
	// entry/exit action.
	CodeAction
)

func (c ErrorCode) String() string {
	switch c {
	case CodeModel:
		return "model"
	case CodeIllFormed:
		return "ill-formed"
	case CodeAction:
		return "action"
	default:
		return "unknown"
	}
}

// ModelError reports a construction-time invariant violation: a
// duplicate initial pseudo state in a region, a transition built with an
// invalid source/target kind combination, and similar. The pkg/model
// constructors return no errors and never produce one; a duplicate
// initial pseudo state is reported by pkg/validate as a Diagnostic.
type ModelError struct {
	Element string
	Reason  string
}

func NewModelError(element, reason string) *ModelError {
	return &ModelError{Element: element, Reason: reason}
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model error at %s: %s", e.Element, e.Reason)
}

func (e *ModelError) ErrorCode() ErrorCode { return CodeModel }

// IllFormedError reports a runtime ill-formed-machine condition: a
// Junction/Choice with an ambiguous or absent match, multiple enabled
// transitions at one state, or a region whose enter cascade finds no
// initial vertex.
type IllFormedError struct {
	Element string
	Reason  string
}

func NewIllFormedError(element, reason string) *IllFormedError {
	return &IllFormedError{Element: element, Reason: reason}
}

func (e *IllFormedError) Error() string {
	return fmt.Sprintf("ill-formed machine at %s: %s", e.Element, e.Reason)
}

func (e *IllFormedError) ErrorCode() ErrorCode { return CodeIllFormed }

// ActionError wraps an error returned by a user effect, entry, or exit
// action, preserving the offending element's qualified name. Panics are
// not recovered, and guards (which return bool) are never wrapped.
type ActionError struct {
	Element string
	Phase   string
	Err     error
}

func NewActionError(element, phase string, err error) *ActionError {
	return &ActionError{Element: element, Phase: phase, Err: err}
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s action at %s failed: %v", e.Phase, e.Element, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func (e *ActionError) ErrorCode() ErrorCode { return CodeAction }

// IsModelError reports whether err is a *ModelError.
func IsModelError(err error) bool {
	_, ok := err.(*ModelError)
	return ok
}

// IsIllFormedError reports whether err is an *IllFormedError.
func IsIllFormedError(err error) bool {
	_, ok := err.(*IllFormedError)
	return ok
}

// IsActionError reports whether err is an *ActionError.
func IsActionError(err error) bool {
	_, ok := err.(*ActionError)
	return ok
}

// GetErrorCode extracts the ErrorCode from any error raised by this
// package, returning false for foreign errors.
func GetErrorCode(err error) (ErrorCode, bool) {
	type coder interface{ ErrorCode() ErrorCode }
	if c, ok := err.(coder); ok {
		return c.ErrorCode(), true
	}
	return 0, false
}
