// Package ast provides the in-memory data model of the entry notation.
//
// One notation line describes one dictionary entry:
//
//	rise[sp:rose,pp:risen]
//	abandon|abandoned,abandonment
//	better>>(cmp)good
//	rose|>(sp)rise
//
// # Core Types
//
// Entry: a headword with annotations and sub-entries, or a pure redirection
// to another headword. The two shapes are mutually exclusive.
//
// SubEntry: a related word or phrase, a pure redirect standing in its place,
// or a word carrying an embedded redirect ("text>target").
//
// Redirect: a target headword plus an ordered list of relation-type tags.
//
// AnnotationValue: either a text value ("sp:rose") or a flag ("irregular").
//
// Location: source location (file, line, column) of a parsed node.
//
// # Invariants
//
// The builder methods on Entry enforce the redirect/sub-entry exclusion and
// reject any text that would not survive a serialize/parse round trip, so
// every Entry reachable through the API satisfies
//
//	parser.ParseLine(e.String()) is Equal to e
//
// Location fields are not serialized and take no part in Equal.
package ast
