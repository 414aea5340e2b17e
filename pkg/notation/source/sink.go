package source

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes lines to path atomically: the content goes to a temporary
// file in the same directory which is then renamed over path. An existing
// file keeps its permissions.
func WriteFile(path string, lines []string) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return translate(err, path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var content strings.Builder
	for _, line := range lines {
		content.WriteString(line)
		content.WriteByte('\n')
	}

	if _, err = tmp.WriteString(content.String()); err != nil {
		return translate(err, path)
	}
	if err = tmp.Sync(); err != nil {
		return translate(err, path)
	}
	if err = tmp.Chmod(mode); err != nil {
		return translate(err, path)
	}
	if err = tmp.Close(); err != nil {
		return translate(err, path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return translate(err, path)
	}
	return nil
}
