package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"mercator-hq/lexicon/pkg/cli"
	"mercator-hq/lexicon/pkg/config"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var lintFlags struct {
	dir      string
	pattern  string
	format   string
	failFast bool
	progress bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [FILE...]",
	Short: "Validate notation files",
	Long: `Validate notation files for syntax and structural errors.

Each file is parsed line by line and then checked for:
  - Duplicate headwords
  - Role conflicts (a word used as headword and sub-entry, or as a
    sub-entry of several headwords)
  - Circular dependencies between headwords and their sub-entries
  - Circular redirections

By default every problem is reported (validation.mode: all). With
--fail-fast, or validation.mode: first, checking stops at the first one.

Examples:
  # Lint files
  lexicon lint words.lex phrases.lex

  # Lint every notation file below a directory
  lexicon lint --dir dictionaries/

  # Only files matching a pattern
  lexicon lint --dir dictionaries/ --pattern "en/**/*.lex"

  # JSON output for CI/CD
  lexicon lint words.lex --format json`,
	RunE: lintFiles,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of notation files")
	lintCmd.Flags().StringVar(&lintFlags.pattern, "pattern", "", "glob (with **) selecting files below --dir; default: configured extensions")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().BoolVar(&lintFlags.failFast, "fail-fast", false, "stop each file at its first problem")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "report progress on stderr")
}

// LintResult represents the lint result for a single notation file.
type LintResult struct {
	File     string    `json:"file"`
	Valid    bool      `json:"valid"`
	Entries  int       `json:"entries"`
	Problems []Problem `json:"problems,omitempty"`
}

// Problem represents a single parse or validation problem.
type Problem struct {
	Line       int      `json:"line,omitempty"`
	Column     int      `json:"column,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	Message    string   `json:"message"`
	Chain      []string `json:"chain,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`

	context string
}

func lintFiles(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(lintFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	files, err := lintTargets(args)
	if err != nil {
		return err
	}

	mode := app.cfg.Validation.Mode
	if lintFlags.failFast {
		mode = config.ValidationModeFirst
	}

	var progress cli.ProgressReporter
	if lintFlags.progress && len(files) > 1 {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr(), "files")
		progress.Start(int64(len(files)))
	}

	results := make([]LintResult, 0, len(files))
	for i, file := range files {
		results = append(results, lintFile(cmd.Context(), file, mode))
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(out, results); err != nil {
			return err
		}
	} else {
		outputLintText(out, results)
	}

	total := 0
	for _, r := range results {
		total += len(r.Problems)
	}
	if total > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("%d problem(s) found", total))
	}
	return nil
}

// lintTargets resolves the files named on the command line and below --dir.
func lintTargets(args []string) ([]string, error) {
	files := slices.Clone(args)

	if lintFlags.dir != "" {
		found, err := discoverFiles(lintFlags.dir, lintFlags.pattern, app.cfg.Notation.Extensions)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no notation files found in %s", lintFlags.dir)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("either FILE arguments or --dir must be specified")
	}
	return files, nil
}

// discoverFiles lists files below dir matching pattern, or every file with
// one of extensions when pattern is empty. Results are sorted.
func discoverFiles(dir, pattern string, extensions []string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, cli.NewConfigError("pattern", fmt.Sprintf("invalid glob %q", pattern))
	}

	glob := pattern
	if glob == "" {
		glob = "**/*"
	}

	matches, err := doublestar.Glob(os.DirFS(dir), glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list notation files: %w", err)
	}

	var files []string
	for _, m := range matches {
		if pattern == "" && !hasExtension(m, extensions) {
			continue
		}
		files = append(files, filepath.Join(dir, filepath.FromSlash(m)))
	}
	slices.Sort(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// lintFile loads and validates one file.
func lintFile(ctx context.Context, path, mode string) LintResult {
	result := LintResult{File: path, Valid: true}

	c, err := loadFile(ctx, path)
	if err != nil {
		result.Valid = false
		result.Problems = append(result.Problems, problemFrom(err))
		return result
	}
	result.Entries = c.Len()

	start := time.Now()
	errs := nerrors.NewErrorList()
	if mode == config.ValidationModeFirst {
		if err := c.Validate(); err != nil {
			var ne *nerrors.Error
			if !errors.As(err, &ne) {
				ne = nerrors.New(nerrors.KindOf(err), "", "%s", err.Error())
			}
			errs.Add(ne)
		}
	} else {
		errs = c.ValidateAll()
	}
	app.metrics.RecordValidation(mode, errs, time.Since(start))

	for _, e := range errs.Errors {
		result.Problems = append(result.Problems, problemFrom(e))
	}
	result.Valid = len(result.Problems) == 0
	return result
}

func problemFrom(err error) Problem {
	var ne *nerrors.Error
	if !errors.As(err, &ne) {
		return Problem{Kind: string(nerrors.KindOf(err)), Message: err.Error()}
	}
	return Problem{
		Line:       ne.Location.Line,
		Column:     ne.Location.Column,
		Kind:       string(ne.Type),
		Message:    ne.Message,
		Chain:      ne.Chain,
		Suggestion: ne.Suggestion,
		context:    nerrors.ExtractContext(ne.Location, 0),
	}
}

func outputLintText(w io.Writer, results []LintResult) {
	totalErrors := 0

	for _, result := range results {
		fmt.Fprintf(w, "Validating %s...\n", result.File)

		if result.Valid {
			fmt.Fprintf(w, "✓ %d entries, no problems\n", result.Entries)
		}

		for _, p := range result.Problems {
			fmt.Fprintf(w, "✗ Error: %s", p.Message)
			if p.Line > 0 {
				fmt.Fprintf(w, " (line %d", p.Line)
				if p.Column > 0 {
					fmt.Fprintf(w, ", col %d", p.Column)
				}
				fmt.Fprint(w, ")")
			}
			if p.Kind != "" {
				fmt.Fprintf(w, " [%s]", p.Kind)
			}
			fmt.Fprintln(w)
			if p.context != "" {
				fmt.Fprint(w, p.context)
			}
			if p.Suggestion != "" {
				fmt.Fprintf(w, "  Suggestion: %s\n", p.Suggestion)
			}
			totalErrors++
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d file(s), %d error(s)\n", len(results), totalErrors)
}
