// Package errors provides error handling for contractgen.
//
// It re-exports github.com/cockroachdb/errors so every package gets stack
// traces, wrapping and user-facing hints from a single import:
//
//	if err := os.WriteFile(path, data, 0644); err != nil {
//	    return errors.WithHint(errors.Wrapf(err, "failed to write %s", path),
//	        "check that the output directory is writable")
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Mark         = crdb.Mark
	Join         = crdb.Join
	Unwrap       = crdb.Unwrap
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Sentinel errors. Wrap or Mark them to add context; match with Is.
var (
	// ErrOutOfDate is returned by check when generated files differ from disk.
	ErrOutOfDate = New("generated files are out of date")

	// ErrInvalidConfig marks configuration validation failures.
	ErrInvalidConfig = New("invalid configuration")

	// ErrNoContracts means none of the configured contract files could be read.
	ErrNoContracts = New("no contract files found")

	// ErrUnknownTarget is returned for a target name no generator handles.
	ErrUnknownTarget = New("unknown target")
)

// IsOutOfDate reports whether err is or wraps ErrOutOfDate.
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// InvalidConfigf creates a configuration error marked with ErrInvalidConfig.
func InvalidConfigf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}

// UnknownTarget creates an error for an unrecognised target name.
func UnknownTarget(name string) error {
	return WithHint(Wrapf(ErrUnknownTarget, "%q", name),
		"valid targets: typescript, dart, openapi, markdown, all")
}
