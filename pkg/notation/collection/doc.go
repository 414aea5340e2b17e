// Package collection holds an ordered set of entries loaded from notation
// text, answers lookups over it and runs collection-wide validation.
//
// # Loading
//
// Text and named sources have separate entry points; nothing is inferred
// from the shape of the input:
//
//	c, err := collection.FromText("run[sp:ran]\nran>>(sp)run\n")
//
//	src, err := source.OpenFile("words.lex")
//	defer src.Close()
//	c, err := collection.FromSource(src)
//
// Blank lines and lines whose first non-blank character is '#' are skipped.
// The first malformed line aborts loading with an error naming the line
// number and source; no partial collection is returned.
//
// # Merging
//
// Add with merge enabled folds an entry into an existing normal entry with
// the same headword: annotations are overwritten key by key and sub-entries
// are appended unless one with identical text exists. Loading from text never
// merges; each line becomes its own entry so that duplicates stay visible to
// validation.
package collection
