package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"mercator-hq/lexicon/pkg/cli"
	"mercator-hq/lexicon/pkg/watch"

	"github.com/spf13/cobra"
)

var watchFlags struct {
	pattern string
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE|DIR",
	Short: "Re-lint notation files when they change",
	Long: `Lint a notation file, or every notation file below a directory, and
lint again whenever they change. Bursts of changes are collapsed into one
run (watch.debounce). Stop with Ctrl-C.

Examples:
  lexicon watch words.lex
  lexicon watch dictionaries/ --pattern "**/*.lex"`,
	Args: cobra.ExactArgs(1),
	RunE: watchFiles,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.pattern, "pattern", "", "glob (with **) selecting files below DIR; default: configured extensions")
}

func watchFiles(cmd *cobra.Command, args []string) error {
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	// Debounced callbacks may overlap with a slow run.
	var mu sync.Mutex
	relint := func() {
		mu.Lock()
		defer mu.Unlock()

		files := []string{path}
		if info.IsDir() {
			found, err := discoverFiles(path, watchFlags.pattern, app.cfg.Notation.Extensions)
			if err != nil {
				app.logger.ErrorContext(ctx, "Failed to list notation files", "error", err)
				return
			}
			files = found
		}
		lintAndReport(ctx, cmd, files)
	}

	relint()

	watcher, err := watch.NewFileWatcher(watch.ConfigFrom(path, app.cfg), app.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = watcher.Stop() }()

	err = watcher.Watch(ctx, func(ev watch.Event) error {
		app.metrics.RecordWatchEvent(ev.Op)
		app.logger.InfoContext(ctx, "Change detected", "path", ev.Path, "op", ev.Op)
		relint()
		return nil
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// lintAndReport lints files, prints the text report and refreshes the
// metrics textfile.
func lintAndReport(ctx context.Context, cmd *cobra.Command, files []string) {
	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(ctx, file, app.cfg.Validation.Mode))
	}
	outputLintText(cmd.OutOrStdout(), results)

	if err := app.metrics.WriteTextfile(app.cfg.Metrics.Textfile); err != nil {
		app.logger.ErrorContext(ctx, "Failed to write metrics", "error", err)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
