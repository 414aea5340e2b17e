package ast

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"mercator-hq/lexicon/pkg/notation/syntax"
)

// DefaultPlaceholder replaces the headword in shortcut renderings.
const DefaultPlaceholder = "~"

// SubEntry is a word or phrase listed under an entry. It is one of:
//   - plain text ("abandoned")
//   - a pure redirect with no text (">(sp)rise")
//   - text with an embedded redirect ("went>go")
//
// A SubEntry never has neither text nor redirect.
type SubEntry struct {
	text     string
	hasText  bool
	redirect *Redirect
	parent   *Entry

	Location Location
}

// NewSubEntry creates a plain sub-entry. The text must be a single list item
// free of the reserved characters [ ] and |. A '>' may only appear inside
// parentheses, and never doubled.
func NewSubEntry(text string) (*SubEntry, error) {
	if err := checkSubEntryText(text); err != nil {
		return nil, err
	}
	return &SubEntry{text: text, hasText: true}, nil
}

// NewRedirectSubEntry creates a pure redirecting sub-entry.
func NewRedirectSubEntry(target string, types ...string) (*SubEntry, error) {
	r, err := NewRedirect(target, types...)
	if err != nil {
		return nil, err
	}
	return &SubEntry{redirect: r}, nil
}

// NewLinkedSubEntry creates a sub-entry whose text carries an embedded redirect.
func NewLinkedSubEntry(text string, r *Redirect) (*SubEntry, error) {
	if err := checkSubEntryText(text); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil redirect for sub-entry %q", ErrInvalidState, text)
	}
	return &SubEntry{text: text, hasText: true, redirect: r.clone()}, nil
}

func checkSubEntryText(text string) error {
	if !syntax.IsListItem(text) ||
		syntax.HasReserved(text, syntax.AnnotationOpen, syntax.AnnotationClose, syntax.SubEntrySeparator) ||
		syntax.IndexTopLevel(text, syntax.SubRedirectMarker) >= 0 ||
		strings.Contains(text, syntax.RedirectMarker) {
		return fmt.Errorf("%w: sub-entry text %q cannot be serialized", ErrInvalidState, text)
	}
	return nil
}

// Text returns the sub-entry text and whether it is set.
func (s *SubEntry) Text() (string, bool) {
	return s.text, s.hasText
}

// Redirect returns the sub-entry's redirect, or nil.
func (s *SubEntry) Redirect() *Redirect {
	return s.redirect
}

// Parent returns the entry the sub-entry belongs to, or nil when detached.
// The reference is for lookup only; the entry owns the sub-entry.
func (s *SubEntry) Parent() *Entry {
	return s.parent
}

// IsRedirect reports whether the sub-entry is a pure redirect (no text).
func (s *SubEntry) IsRedirect() bool {
	return !s.hasText && s.redirect != nil
}

// Shortcut renders the text with the parent's headword replaced by placeholder.
//
// It returns false for pure redirects, detached sub-entries and parents with
// no headword. Text equal to the headword yields the placeholder alone; text
// starting with the headword followed by whitespace yields the placeholder
// plus the remainder ("work out" -> "~ out"). Any other text, including a
// sub-word prefix match ("workout" under "work"), is returned unchanged.
func (s *SubEntry) Shortcut(placeholder string) (string, bool) {
	if s.IsRedirect() || !s.hasText || s.parent == nil || s.parent.headword == "" {
		return "", false
	}
	hw := s.parent.headword
	if s.text == hw {
		return placeholder, true
	}
	if rest, ok := strings.CutPrefix(s.text, hw); ok {
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			return placeholder + rest, true
		}
	}
	return s.text, true
}

// String renders the sub-entry in notation form.
func (s *SubEntry) String() string {
	switch {
	case s.IsRedirect():
		return s.redirect.String()
	case s.redirect != nil:
		return s.text + s.redirect.String()
	default:
		return s.text
	}
}

// Equal compares text and redirect, ignoring parent and location.
func (s *SubEntry) Equal(other *SubEntry) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.hasText == other.hasText && s.text == other.text && s.redirect.Equal(other.redirect)
}

// Clone returns a detached copy of the sub-entry.
func (s *SubEntry) Clone() *SubEntry {
	return &SubEntry{
		text:     s.text,
		hasText:  s.hasText,
		redirect: s.redirect.clone(),
		Location: s.Location,
	}
}
