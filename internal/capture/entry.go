package capture

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the minute-resolution stamp written before every note.
const TimestampLayout = "2006-01-02 15:04"

// ErrEmptyNote is returned for input that is empty after trimming.
var ErrEmptyNote = errors.New("empty note")

// Entry is one captured note. It only lives long enough to be written.
type Entry struct {
	Time time.Time
	Text string
}

// NewEntry trims text and stamps it with now, truncated to the minute.
func NewEntry(text string, now time.Time) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, ErrEmptyNote
	}
	return Entry{Time: now.Truncate(time.Minute), Text: text}, nil
}

// Line renders the entry as a Markdown bullet, newline included.
func (e Entry) Line() string {
	return "- " + e.Time.Format(TimestampLayout) + " " + e.Text + "\n"
}

// Header is written to a capture file when it is first created.
func Header(path string) string {
	return "# " + Title(path) + "\n\n"
}

// Title is the file name without its extension.
func Title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
