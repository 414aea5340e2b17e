package main

import (
	"context"
	"fmt"
	"time"

	"mercator-hq/lexicon/pkg/notation"
	"mercator-hq/lexicon/pkg/notation/collection"
	"mercator-hq/lexicon/pkg/notation/parser"
	"mercator-hq/lexicon/pkg/telemetry/logging"
)

// collectionOptions configures collections from the active configuration.
func collectionOptions() []collection.Option {
	p := parser.NewParser().WithMaxLineLength(app.cfg.Notation.MaxLineLength)
	return []collection.Option{
		collection.WithParser(p),
		collection.WithLogger(app.logger.Slog()),
	}
}

// loadFile loads one notation file and records the outcome.
func loadFile(ctx context.Context, path string) (*collection.Collection, error) {
	ctx = logging.WithSource(ctx, path)
	start := time.Now()

	c, err := notation.LoadFile(path, collectionOptions()...)

	entries := 0
	if c != nil {
		entries = c.Len()
	}
	app.metrics.RecordLoad(path, entries, time.Since(start), err)

	if err != nil {
		app.logger.DebugContext(ctx, "Load failed", "error", err)
		return nil, err
	}
	app.logger.DebugContext(ctx, "Loaded notation file",
		"entries", entries,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}

// loadFiles loads paths into a single collection. Entries of later files are
// merged into earlier ones when notation.merge_on_add is set.
func loadFiles(ctx context.Context, paths []string) (*collection.Collection, error) {
	if len(paths) == 1 {
		return loadFile(ctx, paths[0])
	}

	merged := collection.New(collectionOptions()...)
	for _, path := range paths {
		c, err := loadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := merged.AddAll(c.Entries(), app.cfg.Notation.MergeOnAdd); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}
	return merged, nil
}
