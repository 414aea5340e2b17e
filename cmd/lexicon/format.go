package main

import (
	"fmt"
	"io"
	"slices"

	"mercator-hq/lexicon/pkg/cli"
	"mercator-hq/lexicon/pkg/notation"
	"mercator-hq/lexicon/pkg/notation/collection"
	"mercator-hq/lexicon/pkg/notation/source"

	"github.com/spf13/cobra"
)

var fmtFlags struct {
	write bool
	check bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Rewrite notation files in canonical form",
	Long: `Print notation files in canonical form: whitespace around delimiters
removed, annotations as key or key:value, sub-entries comma-separated.
Comments and blank lines are dropped.

Examples:
  # Print the canonical form
  lexicon fmt words.lex

  # Rewrite files in place (atomically)
  lexicon fmt --write words.lex

  # Fail when a file is not canonical
  lexicon fmt --check words.lex`,
	Args: cobra.MinimumNArgs(1),
	RunE: formatFiles,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "write the result back to each file")
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "list files that are not in canonical form and fail")
}

func formatFiles(cmd *cobra.Command, args []string) error {
	if fmtFlags.write && fmtFlags.check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}

	out := cmd.OutOrStdout()
	var unformatted []string

	for _, path := range args {
		c, err := loadFile(cmd.Context(), path)
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}

		switch {
		case fmtFlags.check:
			canonical, err := isCanonical(path, c)
			if err != nil {
				return cli.NewCommandError("fmt", err)
			}
			if !canonical {
				unformatted = append(unformatted, path)
				fmt.Fprintln(out, path)
			}

		case fmtFlags.write:
			if err := notation.SaveFile(path, c); err != nil {
				return cli.NewCommandError("fmt", err)
			}
			app.logger.InfoContext(cmd.Context(), "Formatted notation file", "path", path, "entries", c.Len())

		default:
			if err := writeCollection(out, c); err != nil {
				return err
			}
		}
	}

	if len(unformatted) > 0 {
		return cli.NewCommandError("fmt", fmt.Errorf("%d file(s) not in canonical form", len(unformatted)))
	}
	return nil
}

// isCanonical reports whether the file at path already holds exactly the
// canonical lines of c.
func isCanonical(path string, c *collection.Collection) (bool, error) {
	lines, err := source.ReadLines(path)
	if err != nil {
		return false, err
	}
	return slices.Equal(lines, c.Lines()), nil
}

func writeCollection(w io.Writer, c *collection.Collection) error {
	_, err := io.WriteString(w, c.String())
	return err
}
