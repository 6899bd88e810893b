// Package errors provides the error definitions shared by the fruitfilter
// packages: sentinel errors, typed errors carrying context, and
// classification helpers used by the CLI to decide what to show the user.
//
// # Error Types
//
// Domain-specific errors:
//   - DatasetError: a data provider failed to produce the base table
//
// Semantic errors:
//   - NotFoundError: a named resource (view, column, theme) does not exist
//   - ValidationError: user input could not be interpreted
//
// The filter engine itself never returns errors: an empty result is a
// zero-length table, not a failure.
//
// # Usage
//
//	err := errors.NewDatasetError("file", errors.ErrEmptyDataset).WithPath(path)
//	if errors.Is(err, errors.ErrEmptyDataset) { ... }
//
//	var nf *errors.NotFoundError
//	if errors.As(err, &nf) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard library helpers, so callers need import only this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity ranks how serious an error is.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	// SeverityWarning marks errors caused by user input.
	SeverityWarning
	// SeverityError marks real failures.
	SeverityError
)

var severityNames = [...]string{"debug", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Dataset loading.
var (
	ErrUnknownSource = New("unknown data source")
	ErrEmptyDataset  = New("dataset has no records")
	ErrRowCount      = New("row count out of range")
	// ErrInvalidRecord marks a record with a missing or malformed field.
	ErrInvalidRecord = New("invalid record")
)

// Lookups and input.
var (
	ErrUnknownColumn = New("unknown column")
	ErrUnknownView   = New("unknown view")
	// ErrInvalidInput matches every *ValidationError.
	ErrInvalidInput = New("invalid input")
)

// FilterError is implemented by every typed error in this package.
type FilterError interface {
	error
	Unwrap() error
	Severity() Severity
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *baseError) Unwrap() error      { return e.cause }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// labelled renders "kind [k=v, ...]" with empty tags left out.
func labelled(kind string, tags ...string) string {
	var set []string
	for i := 0; i+1 < len(tags); i += 2 {
		if tags[i+1] != "" {
			set = append(set, tags[i]+"="+tags[i+1])
		}
	}
	if len(set) == 0 {
		return kind
	}
	return kind + " [" + strings.Join(set, ", ") + "]"
}

// DatasetError reports a provider that could not produce the base table.
//
//	errors.NewDatasetError("file", readErr).WithPath("fruit.yaml")
//	// dataset error [source=file, path=fruit.yaml]: open fruit.yaml: no such file
type DatasetError struct {
	baseError
	Source string
	Path   string
}

func NewDatasetError(source string, cause error) *DatasetError {
	return &DatasetError{
		baseError: baseError{message: "failed to load dataset", cause: cause, severity: SeverityError, userFacing: true},
		Source:    source,
	}
}

// WithPath records the dataset file involved.
func (e *DatasetError) WithPath(path string) *DatasetError {
	e.Path = path
	return e
}

// Error shows the cause in place of the generic message when there is one.
func (e *DatasetError) Error() string {
	detail := e.message
	if e.cause != nil {
		detail = e.cause.Error()
	}
	return labelled("dataset error", "source", e.Source, "path", e.Path) + ": " + detail
}

// NotFoundError reports a named view, column or theme that does not exist.
//
//	errors.NewNotFoundError("view", "pricing").WithCause(errors.ErrUnknownView)
//	// view 'pricing' not found: unknown view
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Is matches any *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError reports input that could not be interpreted.
//
//	errors.NewValidationError("expected YYYY-MM-DD").WithField("from").WithValue("31/03")
//	// validation error [field=from, value=31/03]: expected YYYY-MM-DD
type ValidationError struct {
	baseError
	Field string
	Value any
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{message: message, severity: SeverityWarning, userFacing: true},
	}
}

func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

func (e *ValidationError) Error() string {
	var value string
	if e.Value != nil {
		value = fmt.Sprint(e.Value)
	}
	return labelled("validation error", "field", e.Field, "value", value) + ": " + e.baseError.Error()
}

// Is matches any *ValidationError and ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

func asFilterError(err error) (FilterError, bool) {
	var fe FilterError
	ok := err != nil && As(err, &fe)
	return fe, ok
}

// IsUserFacing reports whether err's message is meant for the end user.
func IsUserFacing(err error) bool {
	fe, ok := asFilterError(err)
	return ok && fe.IsUserFacing()
}

// GetSeverity returns err's severity. Errors from outside this package
// count as SeverityError and nil as SeverityDebug.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	if fe, ok := asFilterError(err); ok {
		return fe.Severity()
	}
	return SeverityError
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
