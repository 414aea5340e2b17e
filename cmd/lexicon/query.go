package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mercator-hq/lexicon/pkg/cli"
	"mercator-hq/lexicon/pkg/notation/ast"
	"mercator-hq/lexicon/pkg/notation/collection"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"

	"github.com/spf13/cobra"
)

var queryFlags struct {
	format  string
	unique  bool
	relType string
}

var countCmd = &cobra.Command{
	Use:   "count FILE...",
	Short: "Count entries and words",
	Long: `Count the entries of notation files.

Reports the number of entries, how many are normal entries and how many
are redirections, and the number of words (headwords plus textual
sub-entries, duplicates included).

Examples:
  lexicon count words.lex
  lexicon count --format json words.lex phrases.lex`,
	Args: cobra.MinimumNArgs(1),
	RunE: countEntries,
}

var wordsCmd = &cobra.Command{
	Use:   "words FILE...",
	Short: "List every word",
	Long: `List every headword followed by the texts of its sub-entries.

Examples:
  lexicon words words.lex
  lexicon words --unique words.lex`,
	Args: cobra.MinimumNArgs(1),
	RunE: listWords,
}

var redirectsCmd = &cobra.Command{
	Use:   "redirects FILE...",
	Short: "List redirections",
	Long: `List every redirection: redirection entries ("better>>(cmp)good") and
redirecting sub-entries ("rose|>(sp)rise").

Examples:
  lexicon redirects words.lex
  lexicon redirects --type sp --format csv words.lex`,
	Args: cobra.MinimumNArgs(1),
	RunE: listRedirects,
}

var findCmd = &cobra.Command{
	Use:   "find TARGET FILE...",
	Short: "Find entries redirecting to a headword",
	Long: `Find the entries that redirect to TARGET, either through their own
redirection or through a redirecting sub-entry.

Examples:
  lexicon find good words.lex
  lexicon find rise --type sp words.lex`,
	Args: cobra.MinimumNArgs(2),
	RunE: findRedirections,
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts FILE...",
	Short: "List sub-entries in shortcut form",
	Long: `List every textual sub-entry next to its shortcut, the text with the
headword replaced by the placeholder (notation.placeholder, default "~"):
"work out" under "work" becomes "~ out".

Examples:
  lexicon shortcuts words.lex
  lexicon shortcuts --format csv words.lex`,
	Args: cobra.MinimumNArgs(1),
	RunE: listShortcuts,
}

func init() {
	for _, cmd := range []*cobra.Command{countCmd, wordsCmd, redirectsCmd, findCmd, shortcutsCmd} {
		cmd.Flags().StringVar(&queryFlags.format, "format", "text", "output format: text, json, csv")
		rootCmd.AddCommand(cmd)
	}
	wordsCmd.Flags().BoolVar(&queryFlags.unique, "unique", false, "list each word once")
	redirectsCmd.Flags().StringVar(&queryFlags.relType, "type", "", "only redirections carrying this relation type")
	findCmd.Flags().StringVar(&queryFlags.relType, "type", "", "only redirections carrying this relation type")
}

// CountResult summarizes a collection.
type CountResult struct {
	Entries   int `json:"entries"`
	Normal    int `json:"normal"`
	Redirects int `json:"redirects"`
	Words     int `json:"words"`
}

func (r CountResult) Header() []string { return []string{"metric", "count"} }

func (r CountResult) Rows() [][]string {
	return [][]string{
		{"entries", strconv.Itoa(r.Entries)},
		{"normal", strconv.Itoa(r.Normal)},
		{"redirects", strconv.Itoa(r.Redirects)},
		{"words", strconv.Itoa(r.Words)},
	}
}

// WordList is a list of words, one per row.
type WordList []string

func (l WordList) Header() []string { return []string{"word"} }

func (l WordList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, w := range l {
		rows[i] = []string{w}
	}
	return rows
}

// Redirection is one redirect found in a collection.
type Redirection struct {
	Headword string   `json:"headword"`
	Via      string   `json:"via"`
	Target   string   `json:"target"`
	Types    []string `json:"types,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// RedirectionList is a list of redirections.
type RedirectionList []Redirection

func (l RedirectionList) Header() []string {
	return []string{"headword", "via", "target", "types", "line"}
}

func (l RedirectionList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, r := range l {
		rows[i] = []string{r.Headword, r.Via, r.Target, strings.Join(r.Types, ","), strconv.Itoa(r.Line)}
	}
	return rows
}

// Shortcut pairs a sub-entry text with its shortcut form.
type Shortcut struct {
	Headword string `json:"headword"`
	Text     string `json:"text"`
	Shortcut string `json:"shortcut"`
}

// ShortcutList is a list of shortcuts.
type ShortcutList []Shortcut

func (l ShortcutList) Header() []string { return []string{"headword", "text", "shortcut"} }

func (l ShortcutList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, s := range l {
		rows[i] = []string{s.Headword, s.Text, s.Shortcut}
	}
	return rows
}

// queryFormat parses the --format flag shared by the query commands.
func queryFormat() (cli.OutputFormat, error) {
	return cli.ParseFormat(queryFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
}

func countEntries(cmd *cobra.Command, args []string) error {
	format, err := queryFormat()
	if err != nil {
		return err
	}
	c, err := loadFiles(cmd.Context(), args)
	if err != nil {
		return cli.NewCommandError("count", err)
	}

	result := CountResult{
		Entries:   c.Len(),
		Normal:    len(c.NormalEntries()),
		Redirects: len(c.RedirectedEntries()),
	}
	for range c.Words() {
		result.Words++
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)
}

func listWords(cmd *cobra.Command, args []string) error {
	format, err := queryFormat()
	if err != nil {
		return err
	}
	c, err := loadFiles(cmd.Context(), args)
	if err != nil {
		return cli.NewCommandError("words", err)
	}

	words := append(WordList{}, c.AllWords()...)
	if queryFlags.unique {
		words = uniqueWords(words)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), words)
}

// uniqueWords keeps the first occurrence of each word.
func uniqueWords(words WordList) WordList {
	seen := make(map[string]struct{}, len(words))
	out := make(WordList, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func listRedirects(cmd *cobra.Command, args []string) error {
	format, err := queryFormat()
	if err != nil {
		return err
	}
	c, err := loadFiles(cmd.Context(), args)
	if err != nil {
		return cli.NewCommandError("redirects", err)
	}

	list := redirections(c.Entries(), "", queryFlags.relType)
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), list)
}

func findRedirections(cmd *cobra.Command, args []string) error {
	format, err := queryFormat()
	if err != nil {
		return err
	}
	target, files := args[0], args[1:]

	c, err := loadFiles(cmd.Context(), files)
	if err != nil {
		return cli.NewCommandError("find", err)
	}

	list := redirections(c.FindRedirectionsTo(target, queryFlags.relType), target, queryFlags.relType)
	if len(list) == 0 {
		reportNotFound(cmd, c, target)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), list)
}

func reportNotFound(cmd *cobra.Command, c *collection.Collection, target string) {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "No entries redirect to %q\n", target)

	if _, ok := c.FindByHeadword(target); ok {
		return
	}
	targets := slices.Compact(slices.Sorted(slices.Values(c.Headwords())))
	if hint := nerrors.SuggestHeadword(target, targets); hint != "" {
		fmt.Fprintln(stderr, hint)
	}
}

// redirections lists the redirects of entries. A non-empty target or
// relType filters individual redirects.
func redirections(entries []*ast.Entry, target, relType string) RedirectionList {
	keep := func(r *ast.Redirect) bool {
		return r != nil &&
			(target == "" || r.Target() == target) &&
			(relType == "" || r.HasType(relType))
	}

	list := RedirectionList{}
	for _, e := range entries {
		if r := e.Redirect(); keep(r) {
			list = append(list, Redirection{
				Headword: e.Headword(),
				Via:      "entry",
				Target:   r.Target(),
				Types:    r.Types(),
				Line:     e.Location.Line,
			})
		}
		for _, s := range e.SubEntries() {
			r := s.Redirect()
			if !keep(r) {
				continue
			}
			via := "sub-entry"
			if text, ok := s.Text(); ok {
				via = text
			}
			list = append(list, Redirection{
				Headword: e.Headword(),
				Via:      via,
				Target:   r.Target(),
				Types:    r.Types(),
				Line:     s.Location.Line,
			})
		}
	}
	return list
}

func listShortcuts(cmd *cobra.Command, args []string) error {
	format, err := queryFormat()
	if err != nil {
		return err
	}
	c, err := loadFiles(cmd.Context(), args)
	if err != nil {
		return cli.NewCommandError("shortcuts", err)
	}

	list := ShortcutList{}
	for _, e := range c.NormalEntries() {
		for _, s := range e.SubEntries() {
			text, ok := s.Text()
			if !ok {
				continue
			}
			short, ok := s.Shortcut(app.cfg.Notation.Placeholder)
			if !ok {
				continue
			}
			list = append(list, Shortcut{Headword: e.Headword(), Text: text, Shortcut: short})
		}
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), list)
}
