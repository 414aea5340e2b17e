// Package syntax holds the lexical rules of the entry notation that are shared
// by the parser and the builder API: marker characters, the parenthesis-aware
// list split and the token checks that keep serialized entries parseable.
package syntax

import (
	"regexp"
	"strings"
	"unicode"
)

// Notation markers.
const (
	RedirectMarker    = ">>" // entry-level redirection
	SubRedirectMarker = '>'  // sub-entry redirection
	SubEntrySeparator = '|'
	AnnotationOpen    = '['
	AnnotationClose   = ']'
	ListSeparator     = ','
	KeyValueSeparator = ':'
	TypesOpen         = '('
	TypesClose        = ')'
	CommentPrefix     = '#'
)

// keyPattern is the identifier rule for annotation keys.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsValidKey reports whether key is a legal annotation key.
func IsValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// SanitizeKey replaces every character that is not allowed in an annotation
// key with an underscore. It is used to build suggestions.
func SanitizeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
	}
	return sb.String()
}

// SmartSplit splits s on sep except where sep is enclosed in parentheses.
// Nesting depth is tracked, so "one,term((a,b),c),three" yields
// ["one", "term((a,b),c)", "three"]. Pieces are returned untrimmed.
// A stray closing parenthesis never drives the depth below zero.
func SmartSplit(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case TypesOpen:
			depth++
		case TypesClose:
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + len(string(sep))
			}
		}
	}
	return append(parts, s[start:])
}

// IndexTopLevel returns the byte index of the first occurrence of b outside
// any parentheses, or -1.
func IndexTopLevel(s string, b byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case TypesOpen:
			depth++
		case TypesClose:
			if depth > 0 {
				depth--
			}
		case b:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MatchingParen returns the index of the parenthesis closing the one at open,
// or -1 when it is never closed.
func MatchingParen(s string, open int) int {
	if open < 0 || open >= len(s) || s[open] != TypesOpen {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case TypesOpen:
			depth++
		case TypesClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Balanced reports whether every parenthesis in s is matched.
func Balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case TypesOpen:
			depth++
		case TypesClose:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// CountBrackets returns the number of annotation open and close brackets in s.
func CountBrackets(s string) (open, close int) {
	return strings.Count(s, string(AnnotationOpen)), strings.Count(s, string(AnnotationClose))
}

// HasReserved reports whether s contains any of the given reserved characters.
func HasReserved(s string, reserved ...rune) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		for _, c := range reserved {
			if r == c {
				return true
			}
		}
		return false
	})
}

// IsTrimmed reports whether s carries no leading or trailing whitespace.
func IsTrimmed(s string) bool {
	return strings.TrimSpace(s) == s
}

// IsListItem reports whether s survives a list round trip as a single item:
// non-empty, trimmed, balanced parentheses and no top-level list separator.
func IsListItem(s string) bool {
	if s == "" || !IsTrimmed(s) || !Balanced(s) {
		return false
	}
	return IndexTopLevel(s, ListSeparator) < 0
}
