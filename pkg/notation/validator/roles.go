package validator

import (
	"fmt"
	"slices"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
)

// roleIndex records which role each word plays across a set of entries.
type roleIndex struct {
	normal      map[string]*ast.Entry // first normal entry per headword
	redirect    map[string]*ast.Entry // first redirection entry per headword
	normalOrder []string

	owners   map[string][]string // sub-entry text -> distinct owning headwords
	subOrder []string
}

func buildRoleIndex(entries []*ast.Entry) *roleIndex {
	idx := &roleIndex{
		normal:   make(map[string]*ast.Entry),
		redirect: make(map[string]*ast.Entry),
		owners:   make(map[string][]string),
	}

	// Walk never fails with these callbacks.
	_ = ast.Walk(entries, ast.VisitorFuncs{
		Entry: func(e *ast.Entry) error {
			hw := e.Headword()
			if e.IsRedirect() {
				if _, ok := idx.redirect[hw]; !ok {
					idx.redirect[hw] = e
				}
				return nil
			}
			if _, ok := idx.normal[hw]; !ok {
				idx.normal[hw] = e
				idx.normalOrder = append(idx.normalOrder, hw)
			}
			return nil
		},
		SubEntry: func(s *ast.SubEntry) error {
			text, ok := s.Text()
			parent := s.Parent()
			if !ok || s.IsRedirect() || parent == nil || parent.IsRedirect() {
				return nil
			}
			owner := parent.Headword()
			if _, seen := idx.owners[text]; !seen {
				idx.subOrder = append(idx.subOrder, text)
			}
			if !slices.Contains(idx.owners[text], owner) {
				idx.owners[text] = append(idx.owners[text], owner)
			}
			return nil
		},
	})

	return idx
}

// headwordEntry returns the entry defining hw in either role.
func (idx *roleIndex) headwordEntry(hw string) (*ast.Entry, bool) {
	if e, ok := idx.normal[hw]; ok {
		return e, true
	}
	e, ok := idx.redirect[hw]
	return e, ok
}

// CheckRoles reports words that play incompatible roles:
//   - a headword that is both a normal and a redirection entry
//   - a headword that is also a sub-entry of a different headword
//   - a sub-entry claimed by more than one headword
//
// A sub-entry equal to its own headword is not a conflict.
func (v *Validator) CheckRoles(entries []*ast.Entry) *nerrors.ErrorList {
	errs := nerrors.NewErrorList()
	idx := buildRoleIndex(entries)

	for _, hw := range idx.normalOrder {
		if r, ok := idx.redirect[hw]; ok {
			errs.Add(&nerrors.Error{
				Type: nerrors.ErrorTypeRoleConflict,
				Message: fmt.Sprintf("Headword %q is both a normal entry (%s) and a redirection entry (%s)",
					hw, describe(entries, idx.normal[hw]), describe(entries, r)),
				Input:    hw,
				Location: r.Location,
				Chain:    []string{hw},
			})
		}
	}

	for _, text := range idx.subOrder {
		e, isHeadword := idx.headwordEntry(text)
		if !isHeadword {
			continue
		}
		others := slices.DeleteFunc(slices.Clone(idx.owners[text]), func(o string) bool { return o == text })
		if len(others) == 0 {
			continue
		}
		errs.Add(&nerrors.Error{
			Type: nerrors.ErrorTypeRoleConflict,
			Message: fmt.Sprintf("Word %q is a headword (%s) and also a sub-entry of %s",
				text, describe(entries, e), quoteAll(others)),
			Input:      text,
			Location:   e.Location,
			Chain:      append([]string{text}, others...),
			Suggestion: fmt.Sprintf("Remove %q from the sub-entries or turn its entry into a redirection", text),
		})
	}

	for _, text := range idx.subOrder {
		owners := idx.owners[text]
		if len(owners) < 2 {
			continue
		}
		location := ast.Location{}
		if e, ok := idx.normal[owners[1]]; ok {
			location = e.Location
		}
		errs.Add(&nerrors.Error{
			Type:     nerrors.ErrorTypeRoleConflict,
			Message:  fmt.Sprintf("Sub-entry %q is claimed by %d headwords: %s", text, len(owners), quoteAll(owners)),
			Input:    text,
			Location: location,
			Chain:    slices.Clone(owners),
		})
	}

	return errs
}
