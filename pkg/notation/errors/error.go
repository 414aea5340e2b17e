package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
)

// ErrorType categorizes a parse, validation or source error.
type ErrorType string

const (
	ErrorTypeEmptyInput             ErrorType = "empty_input"
	ErrorTypeMismatchedBrackets     ErrorType = "mismatched_brackets"
	ErrorTypeMalformedAnnotation    ErrorType = "malformed_annotation"
	ErrorTypeMissingHeadwordText    ErrorType = "missing_headword_text"
	ErrorTypeEmptyAnnotationBlock   ErrorType = "empty_annotation_block"
	ErrorTypeEmptyAnnotationKey     ErrorType = "empty_annotation_key"
	ErrorTypeEmptyAnnotationValue   ErrorType = "empty_annotation_value"
	ErrorTypeInvalidAnnotationKey   ErrorType = "invalid_annotation_key"
	ErrorTypeInvalidAnnotationValue ErrorType = "invalid_annotation_value"
	ErrorTypeInvalidHeadword        ErrorType = "invalid_headword"
	ErrorTypeEmptySubEntry          ErrorType = "empty_sub_entry"
	ErrorTypeInvalidSubEntry        ErrorType = "invalid_sub_entry"
	ErrorTypeMalformedRedirection   ErrorType = "malformed_redirection"
	ErrorTypeEmptyRedirectTarget    ErrorType = "empty_redirect_target"
	ErrorTypeLineTooLong            ErrorType = "line_too_long"

	ErrorTypeInvalidState    ErrorType = "invalid_state"
	ErrorTypeInvalidRedirect ErrorType = "invalid_redirect"

	ErrorTypeDuplicateHeadword   ErrorType = "duplicate_headword"
	ErrorTypeRoleConflict        ErrorType = "role_conflict"
	ErrorTypeCircularDependency  ErrorType = "circular_dependency"
	ErrorTypeCircularRedirection ErrorType = "circular_redirection"

	ErrorTypeFileNotFound     ErrorType = "file_not_found"
	ErrorTypePermissionDenied ErrorType = "permission_denied"
	ErrorTypeIOFailure        ErrorType = "io_failure"
)

// IsParse reports whether t is raised while parsing a single line.
func (t ErrorType) IsParse() bool {
	switch t {
	case ErrorTypeEmptyInput, ErrorTypeMismatchedBrackets, ErrorTypeMalformedAnnotation,
		ErrorTypeMissingHeadwordText, ErrorTypeEmptyAnnotationBlock, ErrorTypeEmptyAnnotationKey,
		ErrorTypeEmptyAnnotationValue, ErrorTypeInvalidAnnotationKey, ErrorTypeInvalidAnnotationValue,
		ErrorTypeInvalidHeadword, ErrorTypeEmptySubEntry, ErrorTypeInvalidSubEntry,
		ErrorTypeMalformedRedirection, ErrorTypeEmptyRedirectTarget, ErrorTypeLineTooLong:
		return true
	}
	return false
}

// IsValidation reports whether t is raised by a collection validation pass.
func (t ErrorType) IsValidation() bool {
	switch t {
	case ErrorTypeDuplicateHeadword, ErrorTypeRoleConflict,
		ErrorTypeCircularDependency, ErrorTypeCircularRedirection:
		return true
	}
	return false
}

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Input      string       // Offending raw text (line, piece or headword)
	Location   ast.Location // Source location (file, line, column)
	Chain      []string     // Implicated headwords, in order (validation errors)
	Context    string       // Surrounding source lines
	Suggestion string       // Suggested fix (optional)
	Cause      error        // Underlying error (optional)
}

// New creates an error of the given type for the offending input.
func New(errType ErrorType, input, format string, args ...any) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Input:   input,
	}
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Summary returns the one-line form "location: message" used in lists.
func (e *Error) Summary() string {
	if e.Location.IsValid() {
		return fmt.Sprintf("%s: %s", e.Location.String(), e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same type, so errors.Is(err, errors.Kind(t))
// works through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type && t.Message == ""
}

// Kind returns a sentinel matching every error of type t under errors.Is.
func Kind(t ErrorType) error {
	return &Error{Type: t}
}

// AtLine returns a copy of err located at the 1-based line number of the
// named source, keeping the original kind and message. Errors that are not
// *Error are wrapped as io_failure.
func AtLine(err error, source string, line int) *Error {
	var src *Error
	if !stderrors.As(err, &src) {
		return &Error{
			Type:     ErrorTypeIOFailure,
			Message:  err.Error(),
			Location: ast.Location{File: source, Line: line},
			Cause:    err,
		}
	}
	tagged := *src
	tagged.Location = ast.Location{File: source, Line: line, Column: src.Location.Column}
	tagged.Cause = src
	return &tagged
}

// KindOf returns the ErrorType of err, mapping builder sentinels from the
// ast package. It returns "" for unrelated errors.
func KindOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	switch {
	case stderrors.Is(err, ast.ErrInvalidRedirect):
		return ErrorTypeInvalidRedirect
	case stderrors.Is(err, ast.ErrInvalidState):
		return ErrorTypeInvalidState
	}
	return ""
}

// ErrorList represents a collection of errors encountered during validation.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// Merge appends every error of other.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// First returns the first error, or nil.
func (el *ErrorList) First() *Error {
	if !el.HasErrors() {
		return nil
	}
	return el.Errors[0]
}

// Messages returns the one-line summary of every error in order.
func (el *ErrorList) Messages() []string {
	out := make([]string, 0, len(el.Errors))
	for _, e := range el.Errors {
		out = append(out, e.Summary())
	}
	return out
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
