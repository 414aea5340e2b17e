// Package source is the I/O boundary of the notation core. It supplies
// numbered lines to the collection builder and writes serialized lines back,
// translating file-system failures into file_not_found, permission_denied
// and io_failure errors.
package source

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
)

// StringIdentity names in-memory sources in error messages.
const StringIdentity = "<string>"

// maxScanToken bounds a single line read from a stream.
const maxScanToken = 1024 * 1024

// Line is one raw line together with its position in the source.
type Line struct {
	Text   string
	Number int    // 1-based
	Source string // source identity
}

// LineSource yields raw lines in order.
//
// Next advances to the next line and reports whether one is available.
// Err returns the first read error once Next has returned false.
type LineSource interface {
	Next() bool
	Line() Line
	Err() error
	Name() string
}

// ReaderSource reads lines from an io.Reader.
type ReaderSource struct {
	name    string
	scanner *bufio.Scanner
	current Line
	number  int
	err     error
}

// NewReaderSource creates a line source over r identified by name.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanToken)
	return &ReaderSource{name: name, scanner: scanner}
}

// NewStringSource creates a line source over an in-memory block of text.
func NewStringSource(text string) *ReaderSource {
	return NewReaderSource(strings.NewReader(text), StringIdentity)
}

// Next advances to the next line.
func (s *ReaderSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.err = translate(err, s.name)
		}
		return false
	}
	s.number++
	text := s.scanner.Text()
	if s.number == 1 {
		text = strings.TrimPrefix(text, "\ufeff")
	}
	s.current = Line{Text: text, Number: s.number, Source: s.name}
	return true
}

// Line returns the current line.
func (s *ReaderSource) Line() Line {
	return s.current
}

// Err returns the read error, if any.
func (s *ReaderSource) Err() error {
	return s.err
}

// Name returns the source identity.
func (s *ReaderSource) Name() string {
	return s.name
}

// FileSource is a ReaderSource backed by an open file.
type FileSource struct {
	*ReaderSource
	file *os.File
}

// OpenFile opens path for reading. The caller must Close the source.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, translate(err, path)
	}
	return &FileSource{ReaderSource: NewReaderSource(f, path), file: f}, nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// ReadLines reads every line of path.
func ReadLines(path string) ([]string, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var lines []string
	for src.Next() {
		lines = append(lines, src.Line().Text)
	}
	return lines, src.Err()
}

// translate maps file-system errors to notation error kinds.
func translate(err error, path string) error {
	if err == nil {
		return nil
	}
	kind := nerrors.ErrorTypeIOFailure
	message := fmt.Sprintf("I/O failure on %s: %v", path, err)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		kind = nerrors.ErrorTypeFileNotFound
		message = fmt.Sprintf("File not found: %s", path)
	case stderrors.Is(err, fs.ErrPermission):
		kind = nerrors.ErrorTypePermissionDenied
		message = fmt.Sprintf("Permission denied: %s", path)
	}
	return &nerrors.Error{
		Type:     kind,
		Message:  message,
		Location: ast.Location{File: path},
		Cause:    err,
	}
}
