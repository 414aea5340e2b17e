package collection

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
	"mercator-hq/lexicon/pkg/notation/parser"
	"mercator-hq/lexicon/pkg/notation/source"
	"mercator-hq/lexicon/pkg/notation/syntax"
	"mercator-hq/lexicon/pkg/notation/validator"
)

// Collection is an ordered list of entries. It assumes a single writer;
// concurrent readers need external synchronization against that writer.
type Collection struct {
	entries   []*ast.Entry
	parser    *parser.Parser
	validator *validator.Validator
	logger    *slog.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithParser sets the parser used for loading.
func WithParser(p *parser.Parser) Option {
	return func(c *Collection) {
		c.parser = p
	}
}

// WithLogger sets a logger for debug tracing of loads and merges.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		c.logger = logger
	}
}

// New creates an empty collection.
func New(opts ...Option) *Collection {
	c := &Collection{
		parser:    parser.NewParser(),
		validator: validator.NewValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// FromText builds a collection from a block of notation text.
func FromText(text string, opts ...Option) (*Collection, error) {
	return FromSource(source.NewStringSource(text), opts...)
}

// FromSource builds a collection by consuming src.
func FromSource(src source.LineSource, opts ...Option) (*Collection, error) {
	c := New(opts...)
	if err := c.Load(src); err != nil {
		return nil, err
	}
	return c, nil
}

// Load parses every line of src and appends the resulting entries. On the
// first malformed line it returns an error tagged with the line number and
// source identity and leaves the collection unchanged.
func (c *Collection) Load(src source.LineSource) error {
	var loaded []*ast.Entry
	skipped := 0

	for src.Next() {
		line := src.Line()
		if IsSkippable(line.Text) {
			skipped++
			continue
		}

		entry, err := c.parser.ParseLine(line.Text)
		if err != nil {
			return nerrors.AtLine(err, line.Source, line.Number)
		}
		locate(entry, line)
		loaded = append(loaded, entry)
	}
	if err := src.Err(); err != nil {
		return err
	}

	c.entries = append(c.entries, loaded...)
	c.logger.Debug("Loaded notation source",
		"source", src.Name(),
		"entries", len(loaded),
		"skipped", skipped,
	)
	return nil
}

// IsSkippable reports whether a raw line is blank or a comment.
func IsSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || trimmed[0] == syntax.CommentPrefix
}

func locate(entry *ast.Entry, line source.Line) {
	column := strings.IndexFunc(line.Text, func(r rune) bool { return r != ' ' && r != '\t' }) + 1
	entry.Location = ast.Location{File: line.Source, Line: line.Number, Column: column}
	for _, s := range entry.SubEntries() {
		s.Location = ast.Location{File: line.Source, Line: line.Number}
	}
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns the entries in order. The slice is a copy.
func (c *Collection) Entries() []*ast.Entry {
	return slices.Clone(c.entries)
}

// Add appends entry. With merge enabled and an existing normal entry of the
// same headword, entry is folded into it instead. Redirection entries are
// never merged.
func (c *Collection) Add(entry *ast.Entry, merge bool) error {
	if entry == nil || entry.Headword() == "" {
		return nerrors.New(nerrors.ErrorTypeInvalidState, "", "Cannot add an entry without a headword")
	}

	if merge && !entry.IsRedirect() {
		for _, existing := range c.FindAllByHeadword(entry.Headword()) {
			if existing.Redirect() == nil {
				return c.merge(existing, entry)
			}
		}
	}

	c.entries = append(c.entries, entry)
	return nil
}

// AddAll adds every entry in order.
func (c *Collection) AddAll(entries []*ast.Entry, merge bool) error {
	for _, e := range entries {
		if err := c.Add(e, merge); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) merge(existing, incoming *ast.Entry) error {
	if existing == incoming {
		return nil
	}
	if err := existing.SetAnnotations(incoming.Annotations()...); err != nil {
		return err
	}

	added := 0
	for _, s := range incoming.SubEntries() {
		if text, ok := s.Text(); ok && hasSubEntryText(existing, text) {
			continue
		}
		if err := existing.AppendSubEntry(s.Clone()); err != nil {
			return err
		}
		added++
	}

	c.logger.Debug("Merged entry",
		"headword", existing.Headword(),
		"annotations", len(incoming.Annotations()),
		"sub_entries_added", added,
	)
	return nil
}

func hasSubEntryText(e *ast.Entry, text string) bool {
	for _, s := range e.SubEntries() {
		if t, ok := s.Text(); ok && t == text {
			return true
		}
	}
	return false
}

// Remove deletes entry (by identity) and reports whether it was present.
func (c *Collection) Remove(entry *ast.Entry) bool {
	i := slices.Index(c.entries, entry)
	if i < 0 {
		return false
	}
	c.entries = slices.Delete(c.entries, i, i+1)
	return true
}

// Clear removes every entry.
func (c *Collection) Clear() {
	c.entries = nil
}

// Lines returns the canonical notation line of every entry.
func (c *Collection) Lines() []string {
	lines := make([]string, len(c.entries))
	for i, e := range c.entries {
		lines[i] = e.String()
	}
	return lines
}

// String renders the collection as notation text, one entry per line.
func (c *Collection) String() string {
	if len(c.entries) == 0 {
		return ""
	}
	return strings.Join(c.Lines(), "\n") + "\n"
}

// Validate runs every validation pass and returns the first problem found.
func (c *Collection) Validate() error {
	return c.validator.Validate(c.entries)
}

// ValidateAll returns every problem found. The list is never nil.
func (c *Collection) ValidateAll() *nerrors.ErrorList {
	return c.validator.ValidateAll(c.entries)
}

// Words yields every headword followed by the texts of its sub-entries.
// Duplicates are kept.
func (c *Collection) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range c.entries {
			if !yield(e.Headword()) {
				return
			}
			for _, s := range e.SubEntries() {
				text, ok := s.Text()
				if !ok {
					continue
				}
				if !yield(text) {
					return
				}
			}
		}
	}
}

// AllWords returns Words as a slice.
func (c *Collection) AllWords() []string {
	return slices.Collect(c.Words())
}
