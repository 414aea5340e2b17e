package parser

import (
	"fmt"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
	"mercator-hq/lexicon/pkg/notation/syntax"
)

// DefaultMaxLineLength is the longest line accepted by NewParser.
const DefaultMaxLineLength = 4096

// Parser parses notation lines into entries.
// It holds configuration only and is safe for concurrent use.
type Parser struct {
	maxLineLength int // Maximum line length in bytes (0 = unlimited)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxLineLength: DefaultMaxLineLength,
	}
}

// WithMaxLineLength sets the maximum accepted line length. Zero disables the limit.
func (p *Parser) WithMaxLineLength(n int) *Parser {
	p.maxLineLength = n
	return p
}

var defaultParser = NewParser()

// ParseLine parses one notation line with the default parser.
func ParseLine(line string) (*ast.Entry, error) {
	return defaultParser.ParseLine(line)
}

// ParseLine parses one trimmed, non-comment notation line into an entry.
func (p *Parser) ParseLine(raw string) (*ast.Entry, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, nerrors.New(nerrors.ErrorTypeEmptyInput, raw, "Empty input line")
	}

	if p.maxLineLength > 0 && len(line) > p.maxLineLength {
		return nil, nerrors.New(nerrors.ErrorTypeLineTooLong, line,
			"Line length %d exceeds maximum %d bytes", len(line), p.maxLineLength)
	}

	if open, closed := syntax.CountBrackets(line); open != closed {
		err := nerrors.New(nerrors.ErrorTypeMismatchedBrackets, line,
			"Unbalanced annotation brackets (%d '[' vs %d ']') in %q", open, closed, line)
		if open > closed {
			err.Suggestion = "Close the annotation block with ']'"
		} else {
			err.Suggestion = "Remove the stray ']' or open the block with '['"
		}
		return nil, err
	}

	if line[0] == syntax.SubEntrySeparator {
		err := nerrors.New(nerrors.ErrorTypeMissingHeadwordText, line,
			"Line starts with '|' before any headword: %q", line)
		err.Location.Column = 1
		return nil, err
	}

	if strings.Contains(line, syntax.RedirectMarker) {
		return parseRedirection(line)
	}
	return parseNormal(line)
}

// parseRedirection parses "headword>>spec".
func parseRedirection(line string) (*ast.Entry, error) {
	idx := strings.Index(line, syntax.RedirectMarker)
	head := strings.TrimSpace(line[:idx])
	spec := strings.TrimSpace(line[idx+len(syntax.RedirectMarker):])

	if head == "" {
		return nil, nerrors.New(nerrors.ErrorTypeMissingHeadwordText, line,
			"Redirection has no headword before '>>': %q", line)
	}
	if syntax.HasReserved(head, syntax.AnnotationOpen, syntax.AnnotationClose, syntax.SubEntrySeparator) {
		err := nerrors.New(nerrors.ErrorTypeMalformedRedirection, line,
			"Redirection headword %q cannot carry annotations or sub-entries", head)
		err.Suggestion = "Write redirections as 'headword>>target' or 'headword>>(type)target'"
		return nil, err
	}
	if spec == "" {
		err := nerrors.New(nerrors.ErrorTypeMalformedRedirection, line,
			"Redirection marker '>>' at end of line with no target: %q", line)
		err.Location.Column = idx + len(syntax.RedirectMarker) + 1
		return nil, err
	}

	redirect, err := parseRedirectSpec(spec, line)
	if err != nil {
		return nil, err
	}

	entry := &ast.Entry{}
	if err := entry.SetHeadword(head); err != nil {
		return nil, invalidHeadword(head, line, err)
	}
	if err := entry.SetRedirect(redirect.Target(), redirect.Types()...); err != nil {
		return nil, malformedRedirect(spec, line, err)
	}
	return entry, nil
}

// parseNormal parses "headword[annotations]|sub,sub".
func parseNormal(line string) (*ast.Entry, error) {
	head, subs, hasSubs := strings.Cut(line, string(syntax.SubEntrySeparator))

	entry := &ast.Entry{}
	if err := parseHead(entry, strings.TrimSpace(head), line); err != nil {
		return nil, err
	}

	if hasSubs {
		if err := parseSubEntries(entry, subs, line); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// parseHead fills the headword and annotations of entry.
func parseHead(entry *ast.Entry, head, line string) error {
	open := strings.IndexByte(head, syntax.AnnotationOpen)
	if open < 0 {
		if head == "" {
			return nerrors.New(nerrors.ErrorTypeMissingHeadwordText, line, "Missing headword text in %q", line)
		}
		if err := entry.SetHeadword(head); err != nil {
			return invalidHeadword(head, line, err)
		}
		return nil
	}

	base := strings.TrimSpace(head[:open])
	block := strings.TrimSpace(head[open:])

	if !strings.HasSuffix(block, string(syntax.AnnotationClose)) {
		err := nerrors.New(nerrors.ErrorTypeMalformedAnnotation, line,
			"Annotation block %q must end with ']'", block)
		err.Location.Column = column(line, block)
		err.Suggestion = "Put sub-entries after the closing ']': headword[key:value]|sub"
		return err
	}
	if base == "" {
		return nerrors.New(nerrors.ErrorTypeMissingHeadwordText, line,
			"Annotation block %q has no headword before it", block)
	}
	if err := entry.SetHeadword(base); err != nil {
		return invalidHeadword(base, line, err)
	}

	return parseAnnotations(entry, block[1:len(block)-1], line)
}

// parseAnnotations parses the inside of an annotation block.
func parseAnnotations(entry *ast.Entry, block, line string) error {
	if strings.TrimSpace(block) == "" {
		return nerrors.New(nerrors.ErrorTypeEmptyAnnotationBlock, line,
			"Empty annotation block in %q", line)
	}

	for _, piece := range syntax.SmartSplit(block, syntax.ListSeparator) {
		piece = strings.TrimSpace(piece)
		key, value, hasValue := strings.Cut(piece, string(syntax.KeyValueSeparator))
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "" {
			err := nerrors.New(nerrors.ErrorTypeEmptyAnnotationKey, line,
				"Empty annotation key in %q", piece)
			err.Location.Column = column(line, piece)
			return err
		}
		if hasValue && value == "" {
			err := nerrors.New(nerrors.ErrorTypeEmptyAnnotationValue, line,
				"Empty value for annotation %q", key)
			err.Location.Column = column(line, piece)
			return err
		}
		if !syntax.IsValidKey(key) {
			err := nerrors.New(nerrors.ErrorTypeInvalidAnnotationKey, line,
				"Invalid annotation key %q", key)
			err.Location.Column = column(line, key)
			err.Suggestion = nerrors.SuggestAnnotationKey(syntax.SanitizeKey(key))
			return err
		}

		annotation := ast.Flag()
		if hasValue {
			if syntax.HasReserved(value, syntax.AnnotationOpen, syntax.AnnotationClose) {
				err := nerrors.New(nerrors.ErrorTypeInvalidAnnotationValue, line,
					"Annotation value %q must not contain '[' or ']'", value)
				err.Location.Column = column(line, value)
				return err
			}
			annotation = ast.Text(value)
		}

		if err := entry.SetAnnotation(key, annotation); err != nil {
			e := nerrors.New(nerrors.ErrorTypeInvalidAnnotationValue, line,
				"Annotation %q has an invalid value %q", key, value)
			e.Location.Column = column(line, piece)
			e.Cause = err
			return e
		}
	}
	return nil
}

// parseSubEntries parses the part after '|' and appends each sub-entry.
func parseSubEntries(entry *ast.Entry, subs, line string) error {
	if strings.TrimSpace(subs) == "" {
		err := nerrors.New(nerrors.ErrorTypeEmptySubEntry, line,
			"Sub-entry separator '|' is not followed by any sub-entry in %q", line)
		err.Suggestion = "Remove the trailing '|' or list sub-entries after it"
		return err
	}

	for _, piece := range syntax.SmartSplit(subs, syntax.ListSeparator) {
		piece = strings.TrimSpace(piece)
		sub, err := parseSubEntry(piece, line)
		if err != nil {
			return err
		}
		if err := entry.AppendSubEntry(sub); err != nil {
			return invalidSubEntry(piece, line, err)
		}
	}
	return nil
}

// parseSubEntry classifies and parses one sub-entry piece.
func parseSubEntry(piece, line string) (*ast.SubEntry, error) {
	if piece == "" {
		return nil, nerrors.New(nerrors.ErrorTypeEmptySubEntry, line, "Empty sub-entry in %q", line)
	}

	// Pure redirect: ">(types)target"
	if piece[0] == syntax.SubRedirectMarker {
		redirect, err := parseRedirectSpec(piece[1:], line)
		if err != nil {
			return nil, err
		}
		sub, err := ast.NewRedirectSubEntry(redirect.Target(), redirect.Types()...)
		if err != nil {
			return nil, malformedRedirect(piece, line, err)
		}
		return sub, nil
	}

	// Text with embedded redirect: "text>(types)target"
	if gt := syntax.IndexTopLevel(piece, syntax.SubRedirectMarker); gt >= 0 {
		text := strings.TrimSpace(piece[:gt])
		redirect, err := parseRedirectSpec(piece[gt+1:], line)
		if err != nil {
			return nil, err
		}
		sub, err := ast.NewLinkedSubEntry(text, redirect)
		if err != nil {
			return nil, invalidSubEntry(text, line, err)
		}
		return sub, nil
	}

	sub, err := ast.NewSubEntry(piece)
	if err != nil {
		return nil, invalidSubEntry(piece, line, err)
	}
	return sub, nil
}

// parseRedirectSpec parses "target" or "(t1,t2)target".
func parseRedirectSpec(spec, line string) (*ast.Redirect, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nerrors.New(nerrors.ErrorTypeEmptyRedirectTarget, line,
			"Redirect has an empty target in %q", line)
	}

	var types []string
	target := spec
	if spec[0] == syntax.TypesOpen {
		closeIdx := syntax.MatchingParen(spec, 0)
		if closeIdx < 0 {
			err := nerrors.New(nerrors.ErrorTypeMalformedRedirection, line,
				"Unclosed relation-type list in %q", spec)
			err.Location.Column = column(line, spec)
			return nil, err
		}
		for _, t := range syntax.SmartSplit(spec[1:closeIdx], syntax.ListSeparator) {
			t = strings.TrimSpace(t)
			if t == "" {
				err := nerrors.New(nerrors.ErrorTypeMalformedRedirection, line,
					"Empty relation type in %q", spec)
				err.Location.Column = column(line, spec)
				return nil, err
			}
			types = append(types, t)
		}
		target = strings.TrimSpace(spec[closeIdx+1:])
		if target == "" {
			return nil, nerrors.New(nerrors.ErrorTypeEmptyRedirectTarget, line,
				"Redirect %q has relation types but no target", spec)
		}
	}

	redirect, err := ast.NewRedirect(target, types...)
	if err != nil {
		return nil, malformedRedirect(spec, line, err)
	}
	return redirect, nil
}

func invalidHeadword(head, line string, cause error) error {
	err := nerrors.New(nerrors.ErrorTypeInvalidHeadword, line,
		"Invalid headword %q: headwords must not start with '#' or contain '>'", head)
	err.Cause = cause
	return err
}

func invalidSubEntry(piece, line string, cause error) error {
	err := nerrors.New(nerrors.ErrorTypeInvalidSubEntry, line,
		"Invalid sub-entry %q", piece)
	err.Location.Column = column(line, piece)
	err.Cause = cause
	return err
}

func malformedRedirect(spec, line string, cause error) error {
	err := nerrors.New(nerrors.ErrorTypeMalformedRedirection, line,
		"Malformed redirect %q", spec)
	err.Location.Column = column(line, spec)
	err.Cause = cause
	return err
}

// column returns the 1-based position of the first occurrence of part in
// line, or 0.
func column(line, part string) int {
	if part == "" {
		return 0
	}
	if i := strings.Index(line, part); i >= 0 {
		return i + 1
	}
	return 0
}

// MustParseLine is like ParseLine but panics on error. It is intended for
// tests and static tables.
func MustParseLine(line string) *ast.Entry {
	entry, err := ParseLine(line)
	if err != nil {
		panic(fmt.Sprintf("parser: %v", err))
	}
	return entry
}
