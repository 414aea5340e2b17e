// Package parser turns one line of entry notation into an ast.Entry.
//
// # Grammar
//
//	Entry         ::= Comment | RedirectEntry | NormalEntry
//	Comment       ::= "#" AnyText
//	RedirectEntry ::= Headword ">>" RedirectSpec
//	NormalEntry   ::= Headword Annotations? ("|" SubEntryList)?
//	Annotations   ::= "[" Annotation ("," Annotation)* "]"
//	Annotation    ::= Key (":" Value)?
//	SubEntryList  ::= SubEntry ("," SubEntry)*
//	SubEntry      ::= ">" RedirectSpec | Text (">" RedirectSpec)?
//	RedirectSpec  ::= ("(" Type ("," Type)* ")")? Target
//
// Comma-separated lists are split with syntax.SmartSplit, so commas inside
// parentheses do not separate items ("term(a,b)" is one sub-entry).
//
// # Basic Usage
//
//	entry, err := parser.ParseLine("rise[sp:rose,pp:risen]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, _ := entry.Annotation("sp") // "rose"
//
// Comment and blank lines are the caller's concern; ParseLine rejects blank
// input with empty_input and treats a leading '#' as an invalid headword.
//
// Errors are *errors.Error values naming the malformation kind and carrying
// the offending line in Input. No partially built entry is ever returned.
package parser
