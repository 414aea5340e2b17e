package validator

import (
	"fmt"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
)

// Validator is the main validator that orchestrates all validation passes.
// It holds no state between calls and is safe for concurrent use.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs all passes in order and returns the first error found.
func (v *Validator) Validate(entries []*ast.Entry) error {
	passes := []func([]*ast.Entry) *nerrors.ErrorList{
		v.CheckDuplicates,
		v.CheckRoles,
		v.CheckDependencies,
		v.CheckRedirections,
	}
	for _, pass := range passes {
		if err := firstError(pass(entries)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll collects every duplicate and role problem. Only when there are
// none does it run the cycle passes and append their findings. The returned
// list is never nil.
func (v *Validator) ValidateAll(entries []*ast.Entry) *nerrors.ErrorList {
	errs := nerrors.NewErrorList()
	errs.Merge(v.CheckDuplicates(entries))
	errs.Merge(v.CheckRoles(entries))

	if errs.HasErrors() {
		return errs
	}

	errs.Merge(v.CheckDependencies(entries))
	errs.Merge(v.CheckRedirections(entries))
	return errs
}

// ValidateDuplicates runs only the duplicate pass, failing on the first finding.
func (v *Validator) ValidateDuplicates(entries []*ast.Entry) error {
	return firstError(v.CheckDuplicates(entries))
}

// ValidateRoles runs only the role pass, failing on the first finding.
func (v *Validator) ValidateRoles(entries []*ast.Entry) error {
	return firstError(v.CheckRoles(entries))
}

// ValidateDependencies runs only the dependency cycle pass.
func (v *Validator) ValidateDependencies(entries []*ast.Entry) error {
	return firstError(v.CheckDependencies(entries))
}

// ValidateRedirections runs only the redirection cycle pass.
func (v *Validator) ValidateRedirections(entries []*ast.Entry) error {
	return firstError(v.CheckRedirections(entries))
}

func firstError(errs *nerrors.ErrorList) error {
	if first := errs.First(); first != nil {
		return first
	}
	return nil
}

// describe names where an entry lives: its source location, or its position.
func describe(entries []*ast.Entry, e *ast.Entry) string {
	if e.Location.IsValid() {
		return e.Location.String()
	}
	for i, candidate := range entries {
		if candidate == e {
			return fmt.Sprintf("entry #%d", i+1)
		}
	}
	return "<unknown>"
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}
