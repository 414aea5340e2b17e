package validator

import (
	"fmt"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
)

// CheckDuplicates reports every headword defined by more than one entry,
// naming all of its locations.
func (v *Validator) CheckDuplicates(entries []*ast.Entry) *nerrors.ErrorList {
	errs := nerrors.NewErrorList()

	var order []string
	byHeadword := make(map[string][]*ast.Entry)
	for _, e := range entries {
		hw := e.Headword()
		if _, seen := byHeadword[hw]; !seen {
			order = append(order, hw)
		}
		byHeadword[hw] = append(byHeadword[hw], e)
	}

	for _, hw := range order {
		group := byHeadword[hw]
		if len(group) < 2 {
			continue
		}
		locations := make([]string, len(group))
		for i, e := range group {
			locations[i] = describe(entries, e)
		}
		errs.Add(&nerrors.Error{
			Type:       nerrors.ErrorTypeDuplicateHeadword,
			Message:    fmt.Sprintf("Duplicate headword %q defined %d times at %s", hw, len(group), strings.Join(locations, ", ")),
			Input:      hw,
			Location:   group[1].Location,
			Chain:      []string{hw},
			Suggestion: "Merge the entries into one line",
		})
	}

	return errs
}
