// Package bencherr defines the typed error kinds surfaced across the proof
// engine, per the error handling design: callers distinguish kinds with
// errors.As rather than string matching.
package bencherr

import "fmt"

// Kind enumerates the abstract error categories.
type Kind int

const (
	_ Kind = iota
	InvalidConfig
	InvalidBatch
	ExecutionFailure
	ScoringFailure
	ProverArtefactMissing
	ProverInvocationError
	CircuitInputOutOfRange
	VerificationFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidBatch:
		return "InvalidBatch"
	case ExecutionFailure:
		return "ExecutionFailure"
	case ScoringFailure:
		return "ScoringFailure"
	case ProverArtefactMissing:
		return "ProverArtefactMissing"
	case ProverInvocationError:
		return "ProverInvocationError"
	case CircuitInputOutOfRange:
		return "CircuitInputOutOfRange"
	case VerificationFailure:
		return "VerificationFailure"
	default:
		return "Unknown"
	}
}

// Error is the single structured error type returned by this module. TestID
// is empty when the failure is not attributable to one record.
type Error struct {
	Kind   Kind
	TestID string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.TestID != "" {
		return fmt.Sprintf("%s: %s (test %s)", e.Kind, e.Msg, e.TestID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error carrying an underlying cause.
func Wrap(kind Kind, testID string, err error, msg string) *Error {
	return &Error{Kind: kind, TestID: testID, Msg: msg, Err: err}
}
