package logger

import (
	"go.uber.org/zap"
)

// Standard field names for structured logging.
const (
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldTarget    = "target"

	// Contract sources
	FieldFile     = "file"
	FieldLine     = "line"
	FieldText     = "text"
	FieldContract = "contract"

	// Generated output
	FieldPath      = "path"
	FieldBytes     = "bytes"
	FieldTypes     = "types"
	FieldEndpoints = "endpoints"
	FieldCount     = "count"

	FieldError      = "error"
	FieldDurationMS = "duration_ms"
	FieldVerbosity  = "verbosity"
	FieldVersion    = "version"
)

// ComponentLogger returns a named logger for a specific component.
//
//	type Driver struct {
//	    log *zap.SugaredLogger
//	}
//
//	d := &Driver{log: logger.ComponentLogger("driver")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
