package capture

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"time"
)

// ReadEntries returns the captured notes in path, oldest first.
func ReadEntries(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEntries(content), nil
}

// ParseEntries extracts capture entries from a capture file. A line of the
// form "- YYYY-MM-DD HH:MM text" starts an entry; every following line up to
// the next such line belongs to it, since multi-line notes are written
// without indentation. Lines before the first entry (the heading) are skipped.
func ParseEntries(source []byte) []Entry {
	var (
		entries []Entry
		current *Entry
		body    []string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(append([]string{current.Text}, body...), "\n"))
		if current.Text != "" {
			entries = append(entries, *current)
		}
		current, body = nil, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if entry, ok := parseEntryLine(line); ok {
			flush()
			current = &entry
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return entries
}

// parseEntryLine recognizes the first line of an entry.
func parseEntryLine(line string) (Entry, bool) {
	if !strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "* ") {
		return Entry{}, false
	}
	rest := line[2:]
	if len(rest) < len(TimestampLayout)+1 || rest[len(TimestampLayout)] != ' ' {
		return Entry{}, false
	}
	ts, err := time.ParseInLocation(TimestampLayout, rest[:len(TimestampLayout)], time.Local)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Time: ts, Text: rest[len(TimestampLayout)+1:]}, true
}

// Last returns at most n entries from the end of entries.
func Last(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
