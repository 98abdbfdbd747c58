// Package report is the diagnostics sink the chassis and its validation
// components write to. Messages carry a severity and the originating
// component; delivery goes through a zap logger which defaults to no-op,
// matching library use where the embedding application owns log routing.
package report

import (
	"sync"

	"go.uber.org/zap"
)

// Severity classifies a diagnostic message.
type Severity int8

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityPerformance
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "verbose"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityPerformance:
		return "performance"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger.
// This must be called before any scope objects are constructed.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Reporter is a scope-bound sink handed to validation components. All
// methods are safe for concurrent use.
type Reporter struct {
	scope string
	log   *zap.Logger
}

// NewReporter creates a reporter for one scope object ("instance" or
// "device"), writing through the package logger.
func NewReporter(scope string) *Reporter {
	return &Reporter{scope: scope, log: Logger()}
}

// Message delivers one diagnostic from a component.
func (r *Reporter) Message(sev Severity, component, msg string) {
	fields := []zap.Field{
		zap.String("scope", r.scope),
		zap.String("component", component),
		zap.String("severity", sev.String()),
	}
	switch sev {
	case SeverityError:
		r.log.Error(msg, fields...)
	case SeverityWarning, SeverityPerformance:
		r.log.Warn(msg, fields...)
	case SeverityVerbose:
		r.log.Debug(msg, fields...)
	default:
		r.log.Info(msg, fields...)
	}
}

// Errorf reports an error value raised inside the chassis itself.
func (r *Reporter) Errorf(component string, err error) {
	r.log.Error(err.Error(),
		zap.String("scope", r.scope),
		zap.String("component", component),
		zap.Error(err),
	)
}
