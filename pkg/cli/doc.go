/*
Package cli provides command-line interface utilities for the lexicon command.

The cli package includes output formatters, a progress reporter, command
errors and signal handling shared by the lexicon subcommands.

Output Formatting:

Command results can be rendered as text, JSON or CSV. Tabular results
implement Table so the text and CSV formatters can lay them out:

	format, err := cli.ParseFormat(flagValue, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

For runs over many files, report progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr, "files")
	progress.Start(int64(len(files)))
	for i, f := range files {
		lint(f)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
*/
package cli
