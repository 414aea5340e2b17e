// Package watch re-runs a callback when notation files change on disk.
//
// A FileWatcher wraps fsnotify. It watches a single file (through its parent
// directory, so editors that replace files on save keep working) or a
// directory tree, filters events by extension, and debounces bursts of
// events into a single callback.
//
// Basic usage:
//
//	w, err := watch.NewFileWatcher(&watch.Config{
//		Path:       "words.lex",
//		Debounce:   200 * time.Millisecond,
//		Extensions: []string{".lex"},
//	}, logger)
//	if err != nil {
//		return err
//	}
//	defer w.Stop()
//
//	err = w.Watch(ctx, func(ev watch.Event) error {
//		return relint(ev.Path)
//	})
package watch
