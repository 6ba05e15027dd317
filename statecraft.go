// Package statecraft provides a hierarchical, UML-style finite state
// machine runtime for Go: composite and orthogonal regions, history and
// choice/junction pseudostates, a separate compile step that precomputes
// entry/exit cascades, and a lightweight evaluator that walks them.
package statecraft

import (
	"github.com/mxvane/statecraft/pkg/builders"
	"github.com/mxvane/statecraft/pkg/diagram"
	"github.com/mxvane/statecraft/pkg/errs"
	"github.com/mxvane/statecraft/pkg/instance"
	"github.com/mxvane/statecraft/pkg/loader"
	"github.com/mxvane/statecraft/pkg/model"
	"github.com/mxvane/statecraft/pkg/observers"
	"github.com/mxvane/statecraft/pkg/runtime"
	"github.com/mxvane/statecraft/pkg/validate"
	"github.com/mxvane/statecraft/pkg/visitor"
)

// Core model types
type (
	// StateMachine is the root of a compiled state machine model.
	StateMachine = model.StateMachine

	// Region is an orthogonal container of vertices; every composite
	// State owns one or more.
	Region = model.Region

	// Vertex is anything a transition can reference as a source or
	// target: a State or a PseudoState.
	Vertex = model.Vertex

	// State represents a simple, composite, or orthogonal state,
	// including the degenerate FinalState case.
	State = model.State

	// PseudoState represents Initial, ShallowHistory, DeepHistory,
	// Junction, Choice, or Terminate nodes.
	PseudoState = model.PseudoState

	// PseudoKind enumerates the closed set of pseudostate kinds.
	PseudoKind = model.PseudoKind

	// Transition connects a source Vertex to a target Vertex.
	Transition = model.Transition

	// TransitionKind is External, Local, or Internal.
	TransitionKind = model.TransitionKind

	// Message is an event instance dispatched into a running machine.
	Message = model.Message

	// Instance holds one execution's current-vertex-per-region state,
	// opaque to the core engine.
	Instance = model.Instance

	// Guard evaluates whether a transition may fire.
	Guard = model.Guard

	// Action performs a side effect during entry, exit, or transition.
	Action = model.Action

	// Element is the common supertype of Region, Vertex and
	// StateMachine.
	Element = model.Element

	// Observer receives lifecycle notifications from a running machine.
	Observer = model.Observer
)

// Pseudostate kind constants
const (
	Initial        = model.Initial
	ShallowHistory = model.ShallowHistory
	DeepHistory    = model.DeepHistory
	Junction       = model.Junction
	Choice         = model.Choice
	Terminate      = model.Terminate
)

// Transition kind constants
const (
	External = model.External
	Local    = model.Local
	Internal = model.Internal
)

// Re-export core constructors
var (
	// NewStateMachine creates a new state machine rooted at a top-level
	// composite state with the given name.
	NewStateMachine = model.NewStateMachine

	// NewState creates a plain (non-final) State under the given
	// parent (a Region, or a State whose default region is used).
	NewState = model.NewState

	// NewFinalState creates a FinalState, marking its owning region
	// complete once entered. Outgoing transitions from it are not
	// rejected at construction; Check reports them.
	NewFinalState = model.NewFinalState

	// NewPseudoState creates a pseudostate of the given kind under a
	// parent.
	NewPseudoState = model.NewPseudoState

	// NewRegion creates an explicit named region under a composite
	// state, for orthogonal (multi-region) states.
	NewRegion = model.NewRegion

	// NewTransition creates a transition between two vertices,
	// classifying its kind (External/Local/Internal) automatically
	// from the ancestry of source and target.
	NewTransition = model.NewTransition

	// NewMessage creates a named message with a fresh identity.
	NewMessage = model.NewMessage

	// NewMessageWithData creates a named message carrying a payload.
	NewMessageWithData = model.NewMessageWithData
)

// Re-export compile/evaluate operations
var (
	// Compile walks the model tree and precomputes every region's
	// entry cascade and every transition's traverse plan. Called
	// automatically by Initialise/Evaluate unless autoCompile is
	// disabled, but may be called ahead of time. It reports no errors.
	Compile = model.Compile

	// Initialise runs a machine's onInitialise cascade against a fresh
	// instance, entering the default path from the root down.
	Initialise = model.Initialise

	// Evaluate dispatches a message into a running instance, returning
	// whether any transition consumed it.
	Evaluate = model.Evaluate

	// IsActive reports whether a vertex is currently active for an
	// instance.
	IsActive = model.IsActive

	// IsComplete reports whether a region or state has reached
	// completion for an instance.
	IsComplete = model.IsComplete
)

// Re-export runtime configuration
type (
	// Config controls process-wide and per-call evaluation behavior:
	// the random source used by Choice pseudostates, whether internal
	// transitions trigger completion checks, and the console sink used
	// for warnings.
	Config = runtime.Config

	// Console receives diagnostic output from pkg/validate.
	Console = runtime.Console
)

var (
	// Default is the package-level Config used when callers pass nil.
	Default = runtime.Default

	// Resolved merges a possibly-partial Config against Default.
	Resolved = runtime.Resolved

	// NamespaceSeparator returns the separator used to join qualified
	// names (default ".").
	NamespaceSeparator = runtime.NamespaceSeparator

	// SetNamespaceSeparator overrides the qualified-name separator.
	SetNamespaceSeparator = runtime.SetNamespaceSeparator

	// RegionDefaultName returns the name given to a State's implicit
	// default region (default "default").
	RegionDefaultName = runtime.RegionDefaultName

	// SetRegionDefaultName overrides the default region name.
	SetRegionDefaultName = runtime.SetRegionDefaultName

	// StdConsole writes to stdout via fmt.Printf.
	StdConsole = runtime.StdConsole
)

// Re-export the default Instance implementation
type (
	// DefaultInstance is the library's built-in model.Instance,
	// backed by a mutex-guarded map from Region to current Vertex.
	DefaultInstance = instance.Default
)

var (
	// NewInstance constructs an empty DefaultInstance.
	NewInstance = instance.New
)

// Re-export rejected-message bookkeeping
type (
	// RejectedQueue collects messages a machine declined to consume, so
	// a caller can retry or report them.
	RejectedQueue = model.RejectedQueue
)

var (
	// NewRejectedQueue constructs an empty RejectedQueue.
	NewRejectedQueue = model.NewRejectedQueue
)

// Re-export error types
type (
	// ModelError reports a construction-time modeling mistake.
	ModelError = errs.ModelError

	// IllFormedError reports a runtime ill-formed-machine condition,
	// such as an ambiguous Junction or multiple enabled transitions.
	IllFormedError = errs.IllFormedError

	// ActionError wraps a failure raised by user guard/entry/exit/
	// effect code.
	ActionError = errs.ActionError

	// ErrorCode classifies an error from this package.
	ErrorCode = errs.ErrorCode
)

var (
	NewModelError      = errs.NewModelError
	NewIllFormedError  = errs.NewIllFormedError
	NewActionError     = errs.NewActionError
	IsModelError       = errs.IsModelError
	IsIllFormedError   = errs.IsIllFormedError
	IsActionError      = errs.IsActionError
	GetErrorCode       = errs.GetErrorCode
)

// Re-export observers
type (
	// LoggingObserver logs lifecycle events through fmt.Printf at a
	// configurable level.
	LoggingObserver = observers.LoggingObserver

	// LogLevel controls LoggingObserver's verbosity.
	LogLevel = observers.LogLevel

	// LogFormatter formats a single log line.
	LogFormatter = observers.LogFormatter

	// ValidationObserver records violations of author-registered
	// expected states and allowed transitions.
	ValidationObserver = observers.ValidationObserver

	// MetricsObserver collects visit counts, dwell time, message and
	// transition counts, and error counts.
	MetricsObserver = observers.MetricsObserver
)

const (
	LogError   = observers.LogError
	LogWarning = observers.LogWarning
	LogInfo    = observers.LogInfo
	LogDebug   = observers.LogDebug
)

var (
	NewLoggingObserver       = observers.NewLoggingObserver
	NewDefaultLoggingObserver = observers.NewDefaultLoggingObserver
	DefaultLogFormatter      = observers.DefaultLogFormatter
	NewValidationObserver    = observers.NewValidationObserver
	NewMetricsObserver       = observers.NewMetricsObserver
)

// Re-export the fluent authoring layer
type (
	// Builder provides a fluent interface for constructing a
	// StateMachine model without calling pkg/model constructors
	// directly.
	Builder = builders.StateMachineBuilder

	// RegionBuilder configures a single region within a composite or
	// orthogonal state being built.
	RegionBuilder = builders.RegionBuilder

	// StateBuilder configures a single state within a region being
	// built.
	StateBuilder = builders.StateBuilder

	// TransitionBuilder configures a single transition being built.
	TransitionBuilder = builders.TransitionBuilder

	// WorkflowBuilder offers a linear, workflow-shaped shorthand over
	// Builder for simple sequential pipelines.
	WorkflowBuilder = builders.WorkflowBuilder
)

var (
	NewBuilder         = builders.NewStateMachineBuilder
	NewWorkflowBuilder = builders.NewWorkflowBuilder
)

// Re-export structural validation
type (
	// Diagnostic is a single non-fatal structural finding.
	Diagnostic = validate.Diagnostic
)

var (
	// Check walks a compiled or uncompiled machine looking for
	// structural issues (missing or duplicate initials, initial/history
	// pseudostates without exactly one outgoing transition, junctions or
	// choices with no outgoing or several else transitions, final
	// states or terminates with outgoing transitions) and reports them
	// through a Console instead of failing.
	Check = validate.Check
)

// Re-export diagram export
var (
	// ExportPlantUML renders a machine's structure as a PlantUML state
	// diagram.
	ExportPlantUML = diagram.ExportPlantUML

	// ExportDOT renders a machine's structure as Graphviz DOT.
	ExportDOT = diagram.ExportDOT

	// ExportSVG renders a machine's structure as SVG via a local
	// Graphviz install.
	ExportSVG = diagram.ExportSVG
)

// Re-export the YAML model loader
type (
	// Spec is the YAML document shape accepted by Load.
	Spec = loader.Spec

	// LoaderRegistry resolves the guard/action names a Spec references
	// into the closures the model runs.
	LoaderRegistry = loader.Registry
)

var (
	// Load parses a YAML document into a constructed and compiled
	// StateMachine, resolving guard/action names against reg.
	Load = loader.Load
)

// Re-export the visitor traversal
type (
	// Visitor receives a typed callback per element kind during Walk.
	Visitor = visitor.Visitor

	// DefaultVisitor is a no-op Visitor meant to be embedded so callers
	// only implement the methods they need.
	DefaultVisitor = visitor.DefaultVisitor
)

var (
	// Walk performs a depth-first traversal of sm, dispatching every
	// reachable element to v in construction order.
	Walk = visitor.Walk
)
