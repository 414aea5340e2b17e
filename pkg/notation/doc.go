// Package notation provides parsing and validation for the lexicon entry
// notation, a line-oriented format for dictionary headwords, their
// annotations, related sub-entries and cross-reference redirections.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - syntax: marker characters and the parenthesis-aware list split
// - ast: Entry, SubEntry, Redirect and the builder API
// - parser: one notation line to one Entry
// - collection: ordered entries, lookups, merging and serialization
// - validator: duplicate, role and cycle checks across a collection
// - errors: error kinds with location and suggestions
// - source: line sources and the atomic file sink
//
// # Basic Usage
//
//	c, err := notation.LoadFile("words.lex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range c.ValidateAll().Messages() {
//	    fmt.Println(msg)
//	}
//
// # Notation
//
//	# comment
//	rise[sp:rose,pp:risen]
//	abandon|abandoned,abandonment
//	work|work out,workout
//	better>>(cmp)good
//	rose|>(sp)rise
//	term|term(a,b)
package notation
