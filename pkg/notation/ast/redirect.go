package ast

import (
	"fmt"
	"slices"
	"strings"

	"mercator-hq/lexicon/pkg/notation/syntax"
)

// Redirect points from an entry or sub-entry to another headword.
// It is immutable after construction.
type Redirect struct {
	target string
	types  []string
}

// NewRedirect creates a redirect to target tagged with the given relation types.
// It fails with ErrInvalidRedirect if the target is empty or if the target or a
// type contains characters that would not serialize back to the same redirect.
func NewRedirect(target string, types ...string) (*Redirect, error) {
	if target == "" {
		return nil, fmt.Errorf("%w: empty target", ErrInvalidRedirect)
	}
	if !syntax.IsListItem(target) ||
		target[0] == syntax.TypesOpen ||
		syntax.HasReserved(target, syntax.AnnotationOpen, syntax.AnnotationClose, syntax.SubEntrySeparator, syntax.SubRedirectMarker) {
		return nil, fmt.Errorf("%w: target %q", ErrInvalidRedirect, target)
	}
	for _, t := range types {
		if !syntax.IsListItem(t) ||
			syntax.HasReserved(t, syntax.AnnotationOpen, syntax.AnnotationClose, syntax.SubEntrySeparator, syntax.SubRedirectMarker) {
			return nil, fmt.Errorf("%w: relation type %q", ErrInvalidRedirect, t)
		}
	}
	return &Redirect{target: target, types: slices.Clone(types)}, nil
}

// Target returns the headword the redirect points to.
func (r *Redirect) Target() string {
	return r.target
}

// Types returns a copy of the relation-type tags in order.
func (r *Redirect) Types() []string {
	return slices.Clone(r.types)
}

// HasType reports whether the redirect carries the relation type t.
func (r *Redirect) HasType(t string) bool {
	return slices.Contains(r.types, t)
}

// Spec renders the redirect without its leading marker: "target",
// "(t)target" or "(t1,t2)target".
func (r *Redirect) Spec() string {
	if len(r.types) == 0 {
		return r.target
	}
	return "(" + strings.Join(r.types, ",") + ")" + r.target
}

// String renders the redirect in sub-entry form: ">target", ">(type)target".
func (r *Redirect) String() string {
	return string(syntax.SubRedirectMarker) + r.Spec()
}

// Equal reports whether two redirects have the same target and types.
func (r *Redirect) Equal(other *Redirect) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.target == other.target && slices.Equal(r.types, other.types)
}

func (r *Redirect) clone() *Redirect {
	if r == nil {
		return nil
	}
	return &Redirect{target: r.target, types: slices.Clone(r.types)}
}
