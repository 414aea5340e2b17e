// Package validator checks a set of parsed entries for structural conflicts
// that no single line can reveal.
//
// # Passes
//
// Four independent passes run in this order:
//
// 1. Duplicates: a headword defined by more than one entry.
//
// 2. Roles: a headword that is both a normal and a redirection entry, a
// headword that is also listed as a sub-entry of another entry, or a
// sub-entry claimed by more than one headword.
//
// 3. Dependencies: cycles in the graph from each normal headword to those of
// its textual sub-entries that are headwords themselves.
//
// 4. Redirections: cycles in the graph from each redirection headword to its
// target.
//
// # Basic Usage
//
// Fail on the first problem:
//
//	v := validator.NewValidator()
//	if err := v.Validate(entries); err != nil {
//	    log.Fatal(err)
//	}
//
// Collect every problem (never fails, the list may be empty):
//
//	for _, msg := range v.ValidateAll(entries).Messages() {
//	    fmt.Println(msg)
//	}
//
// ValidateAll runs the cycle passes only when duplicates and roles are clean,
// which keeps one underlying mistake from being reported three times.
package validator
