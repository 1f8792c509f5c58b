package capture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer appends entries to Markdown capture files.
type Writer struct {
	// Now stamps new entries.
	Now func() time.Time

	mu sync.Mutex
}

// NewWriter returns a Writer using the wall clock.
func NewWriter() *Writer {
	return &Writer{Now: time.Now}
}

// Append writes text as a new bullet at the end of path. Whitespace-only
// text returns ErrEmptyNote without touching the filesystem. Missing parent
// directories are created and a new file starts with a title heading.
// Existing content is never rewritten.
func (w *Writer) Append(text, path string) (Entry, error) {
	entry, err := NewEntry(text, w.now())
	if err != nil {
		return Entry{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Entry{}, fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if err := ensureFile(path); err != nil {
		return Entry{}, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return Entry{}, fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	line := entry.Line()
	if missingTrailingNewline(f) {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return Entry{}, fmt.Errorf("writing to %s: %w", path, err)
	}
	return entry, nil
}

// ensureFile creates path with its heading unless it already exists.
// O_EXCL keeps a concurrent creator from getting a second heading.
func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(Header(path)); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	return nil
}

// missingTrailingNewline reports whether a hand-edited file ends mid-line,
// in which case the bullet would otherwise be glued onto that line.
func missingTrailingNewline(f *os.File) bool {
	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return false
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false
	}
	return last[0] != '\n'
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}
