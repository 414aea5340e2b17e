package ast

import (
	"fmt"
	"slices"
	"strings"

	"mercator-hq/lexicon/pkg/notation/syntax"
)

// Kind distinguishes the two shapes an entry can take.
type Kind string

const (
	KindNormal   Kind = "normal"   // headword with annotations and sub-entries
	KindRedirect Kind = "redirect" // pure redirection to another headword
)

// Entry is one line of the notation: a headword with its annotations and
// sub-entries, or a headword redirecting to another one.
//
// The zero value is an empty normal entry. All mutation goes through the
// builder methods, which keep redirect and sub-entries mutually exclusive.
type Entry struct {
	headword    string
	annotations []Annotation
	subEntries  []*SubEntry
	redirect    *Redirect

	Location Location
}

// NewEntry creates a normal entry with the given headword.
func NewEntry(headword string) (*Entry, error) {
	e := &Entry{}
	if err := e.SetHeadword(headword); err != nil {
		return nil, err
	}
	return e, nil
}

// Headword returns the entry's headword.
func (e *Entry) Headword() string {
	return e.headword
}

// Kind returns KindRedirect for pure redirection entries, KindNormal otherwise.
func (e *Entry) Kind() Kind {
	if e.IsRedirect() {
		return KindRedirect
	}
	return KindNormal
}

// IsRedirect reports whether the entry is a pure redirection entry.
func (e *Entry) IsRedirect() bool {
	return e.redirect != nil && len(e.subEntries) == 0
}

// SetHeadword replaces the headword. The headword must be non-empty, trimmed,
// must not start with '#' and must not contain [ ] | or >.
func (e *Entry) SetHeadword(headword string) error {
	if headword == "" || !syntax.IsTrimmed(headword) || headword[0] == syntax.CommentPrefix ||
		syntax.HasReserved(headword, syntax.AnnotationOpen, syntax.AnnotationClose, syntax.SubEntrySeparator, syntax.SubRedirectMarker) {
		return fmt.Errorf("%w: headword %q cannot be serialized", ErrInvalidState, headword)
	}
	e.headword = headword
	return nil
}

// Annotations returns a copy of the annotations in insertion order.
func (e *Entry) Annotations() []Annotation {
	return slices.Clone(e.annotations)
}

// Annotation returns the value stored under key.
func (e *Entry) Annotation(key string) (AnnotationValue, bool) {
	for _, a := range e.annotations {
		if a.Key == key {
			return a.Value, true
		}
	}
	return AnnotationValue{}, false
}

// HasAnnotation reports whether key is set.
func (e *Entry) HasAnnotation(key string) bool {
	_, ok := e.Annotation(key)
	return ok
}

// SetAnnotation sets key to value. An existing key keeps its position and
// takes the new value. It fails on redirection entries.
func (e *Entry) SetAnnotation(key string, value AnnotationValue) error {
	if err := e.checkMutable("annotation"); err != nil {
		return err
	}
	if err := checkAnnotation(key, value); err != nil {
		return err
	}
	e.putAnnotation(key, value)
	return nil
}

// SetAnnotations sets every annotation in order. Nothing is applied if any
// of them is invalid.
func (e *Entry) SetAnnotations(annotations ...Annotation) error {
	if err := e.checkMutable("annotations"); err != nil {
		return err
	}
	for _, a := range annotations {
		if err := checkAnnotation(a.Key, a.Value); err != nil {
			return err
		}
	}
	for _, a := range annotations {
		e.putAnnotation(a.Key, a.Value)
	}
	return nil
}

func (e *Entry) putAnnotation(key string, value AnnotationValue) {
	for i := range e.annotations {
		if e.annotations[i].Key == key {
			e.annotations[i].Value = value
			return
		}
	}
	e.annotations = append(e.annotations, Annotation{Key: key, Value: value})
}

// checkAnnotation requires text values to be a single balanced list item so
// the annotation block re-splits the same way.
func checkAnnotation(key string, value AnnotationValue) error {
	if !syntax.IsValidKey(key) {
		return fmt.Errorf("%w: annotation key %q", ErrInvalidState, key)
	}
	if value.IsFlag() {
		return nil
	}
	if !syntax.IsListItem(value.text) || strings.Contains(value.text, syntax.RedirectMarker) ||
		syntax.HasReserved(value.text, syntax.AnnotationOpen, syntax.AnnotationClose, syntax.SubEntrySeparator) {
		return fmt.Errorf("%w: annotation value %q cannot be serialized", ErrInvalidState, value.text)
	}
	return nil
}

// ClearAnnotations removes every annotation.
func (e *Entry) ClearAnnotations() {
	e.annotations = nil
}

// SubEntries returns the sub-entries in order. The slice is a copy; the
// sub-entries themselves are shared.
func (e *Entry) SubEntries() []*SubEntry {
	return slices.Clone(e.subEntries)
}

// AddSubEntry appends a plain sub-entry.
func (e *Entry) AddSubEntry(text string) error {
	return e.AddSubEntries(text)
}

// AddSubEntries appends plain sub-entries in order. Nothing is appended if
// any text is invalid.
func (e *Entry) AddSubEntries(texts ...string) error {
	if err := e.checkMutable("sub-entry"); err != nil {
		return err
	}
	subs := make([]*SubEntry, 0, len(texts))
	for _, text := range texts {
		s, err := NewSubEntry(text)
		if err != nil {
			return err
		}
		subs = append(subs, s)
	}
	for _, s := range subs {
		e.attach(s)
	}
	return nil
}

// AddRedirectSubEntry appends a pure redirecting sub-entry.
func (e *Entry) AddRedirectSubEntry(target string, types ...string) error {
	if err := e.checkMutable("sub-entry"); err != nil {
		return err
	}
	s, err := NewRedirectSubEntry(target, types...)
	if err != nil {
		return err
	}
	e.attach(s)
	return nil
}

// AppendSubEntry takes ownership of s and appends it. A sub-entry already
// owned by another entry is copied instead.
func (e *Entry) AppendSubEntry(s *SubEntry) error {
	if err := e.checkMutable("sub-entry"); err != nil {
		return err
	}
	if s == nil || (!s.hasText && s.redirect == nil) {
		return fmt.Errorf("%w: empty sub-entry", ErrInvalidState)
	}
	if s.parent != nil && s.parent != e {
		s = s.Clone()
	}
	e.attach(s)
	return nil
}

func (e *Entry) attach(s *SubEntry) {
	s.parent = e
	e.subEntries = append(e.subEntries, s)
}

// ClearSubEntries removes every sub-entry.
func (e *Entry) ClearSubEntries() {
	for _, s := range e.subEntries {
		s.parent = nil
	}
	e.subEntries = nil
}

// Redirect returns the entry's redirect, or nil.
func (e *Entry) Redirect() *Redirect {
	return e.redirect
}

// SetRedirect turns the entry into a redirection entry. It fails if the
// entry has sub-entries or annotations.
func (e *Entry) SetRedirect(target string, types ...string) error {
	if len(e.subEntries) > 0 {
		return fmt.Errorf("%w: %q has sub-entries and cannot redirect", ErrInvalidState, e.headword)
	}
	if len(e.annotations) > 0 {
		return fmt.Errorf("%w: %q has annotations and cannot redirect", ErrInvalidState, e.headword)
	}
	r, err := NewRedirect(target, types...)
	if err != nil {
		return err
	}
	e.redirect = r
	return nil
}

// ClearRedirect removes the redirect, making the entry a normal entry.
func (e *Entry) ClearRedirect() {
	e.redirect = nil
}

// Clear removes annotations, sub-entries and redirect, keeping the headword.
func (e *Entry) Clear() {
	e.ClearAnnotations()
	e.ClearSubEntries()
	e.ClearRedirect()
}

// ClearAll resets the entry including its headword.
func (e *Entry) ClearAll() {
	e.Clear()
	e.headword = ""
}

func (e *Entry) checkMutable(what string) error {
	if e.redirect != nil {
		return fmt.Errorf("%w: cannot add %s to redirection entry %q", ErrInvalidState, what, e.headword)
	}
	return nil
}

// Shortcuts maps the text of every non-redirect sub-entry to its shortcut.
// Redirection entries and entries without sub-entries yield an empty map.
func (e *Entry) Shortcuts(placeholder string) map[string]string {
	out := make(map[string]string)
	if e.IsRedirect() {
		return out
	}
	for _, s := range e.subEntries {
		if s.IsRedirect() {
			continue
		}
		if sc, ok := s.Shortcut(placeholder); ok {
			out[s.text] = sc
		}
	}
	return out
}

// String renders the entry as one notation line.
func (e *Entry) String() string {
	var sb strings.Builder
	sb.WriteString(e.headword)

	if e.IsRedirect() {
		sb.WriteString(syntax.RedirectMarker)
		sb.WriteString(e.redirect.Spec())
		return sb.String()
	}

	if len(e.annotations) > 0 {
		sb.WriteByte(syntax.AnnotationOpen)
		for i, a := range e.annotations {
			if i > 0 {
				sb.WriteByte(syntax.ListSeparator)
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte(syntax.AnnotationClose)
	}

	if len(e.subEntries) > 0 {
		sb.WriteByte(syntax.SubEntrySeparator)
		for i, s := range e.subEntries {
			if i > 0 {
				sb.WriteByte(syntax.ListSeparator)
			}
			sb.WriteString(s.String())
		}
	}

	return sb.String()
}

// Equal reports structural equality, ignoring source locations.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.headword != other.headword || !e.redirect.Equal(other.redirect) {
		return false
	}
	if !slices.Equal(e.annotations, other.annotations) {
		return false
	}
	return slices.EqualFunc(e.subEntries, other.subEntries, (*SubEntry).Equal)
}

// Clone returns a deep copy of the entry. Sub-entries of the copy point to
// the copy as their parent.
func (e *Entry) Clone() *Entry {
	c := &Entry{
		headword:    e.headword,
		annotations: slices.Clone(e.annotations),
		redirect:    e.redirect.clone(),
		Location:    e.Location,
	}
	for _, s := range e.subEntries {
		c.attach(s.Clone())
	}
	return c
}
