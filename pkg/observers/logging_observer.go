// Package observers provides model.Observer implementations for
// monitoring state machine lifecycle events.
package observers

import (
	"fmt"
	"sync"

	"github.com/mxvane/statecraft/pkg/model"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

// LoggingObserver logs state machine lifecycle events
type LoggingObserver struct {
	level     LogLevel
	prefix    string
	mutex     sync.RWMutex
	formatter LogFormatter
}

// LogFormatter formats log messages
type LogFormatter func(level LogLevel, format string, args ...interface{}) string

// DefaultLogFormatter provides default log formatting
func DefaultLogFormatter(level LogLevel, format string, args ...interface{}) string {
	levelStr := "INFO"
	switch level {
	case LogError:
		levelStr = "ERROR"
	case LogWarning:
		levelStr = "WARN"
	case LogInfo:
		levelStr = "INFO"
	case LogDebug:
		levelStr = "DEBUG"
	}

	return fmt.Sprintf("[%s] %s", levelStr, fmt.Sprintf(format, args...))
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(level LogLevel, prefix string) *LoggingObserver {
	return &LoggingObserver{
		level:     level,
		prefix:    prefix,
		formatter: DefaultLogFormatter,
	}
}

// NewDefaultLoggingObserver creates a logging observer with default
// settings (LogInfo level, prefixed "StateMachine").
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(LogInfo, "StateMachine")
}

// SetFormatter sets the log formatter
func (o *LoggingObserver) SetFormatter(formatter LogFormatter) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.formatter = formatter
}

// log logs a message at the specified level
func (o *LoggingObserver) log(level LogLevel, format string, args ...interface{}) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if level <= o.level {
		prefix := ""
		if o.prefix != "" {
			prefix = fmt.Sprintf("[%s] ", o.prefix)
		}

		message := ""
		if o.formatter != nil {
			message = o.formatter(level, format, args...)
		} else {
			message = fmt.Sprintf(format, args...)
		}

		fmt.Printf("%s%s\n", prefix, message)
	}
}

// OnEnter logs entry into an element (state, pseudo state, region).
func (o *LoggingObserver) OnEnter(el model.Element) {
	o.log(LogDebug, "Entering: %s", el.QualifiedName())
}

// OnExit logs exit from an element.
func (o *LoggingObserver) OnExit(el model.Element) {
	o.log(LogDebug, "Exiting: %s", el.QualifiedName())
}

// OnTransition logs a transition traversal.
func (o *LoggingObserver) OnTransition(t *model.Transition, msg *model.Message) {
	name := "<completion>"
	if msg != nil && msg.Name != "" {
		name = msg.Name
	}
	target := "<none>"
	if t.Target() != nil {
		target = t.Target().QualifiedName()
	}
	o.log(LogInfo, "Transition: %s -> %s on message: %s", t.Source().QualifiedName(), target, name)
}

// OnCompletion logs a state reaching completion.
func (o *LoggingObserver) OnCompletion(s *model.State) {
	o.log(LogInfo, "Completed: %s", s.QualifiedName())
}

// OnError logs an error raised during evaluation.
func (o *LoggingObserver) OnError(err error) {
	o.log(LogError, "Error: %v", err)
}
