package notes

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"traynote/internal/capture"
	"traynote/internal/logs"
)

// DefaultPattern matches Markdown files directly inside the folder.
const DefaultPattern = "*.md"

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Scan lists the Markdown files under dir matching a doublestar pattern
// (e.g. "*.md" or "**/*.md"), newest first. A missing dir yields no files.
func Scan(dir, pattern string) ([]File, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	var files []File
	for _, rel := range matches {
		if !strings.EqualFold(filepath.Ext(rel), ".md") {
			continue
		}
		f, err := ParseFile(filepath.Join(dir, filepath.FromSlash(rel)), dir)
		if err != nil {
			logs.Logger.Debug().Err(err).Str("file", rel).Msg("skipping unreadable file")
			continue
		}
		files = append(files, f)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].Date.Equal(files[j].Date) {
			return files[i].Date.After(files[j].Date)
		}
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// ParseFile reads one capture file.
func ParseFile(absPath, rootDir string) (File, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return File{}, err
	}

	filename := filepath.Base(absPath)
	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		relPath = filename
	}

	fmDate, title, body := parseFrontmatter(content)

	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = capture.Title(filename)
	}

	date := fmDate
	if date.IsZero() {
		if match := datePattern.FindString(filename); match != "" {
			if parsed, err := time.ParseInLocation("2006-01-02", match, time.Local); err == nil {
				date = parsed
			}
		}
	}
	if date.IsZero() {
		if info, err := os.Stat(absPath); err == nil {
			date = info.ModTime()
		}
	}

	return File{
		Title:   title,
		Path:    absPath,
		RelPath: filepath.ToSlash(relPath),
		Date:    date,
		Entries: len(capture.ParseEntries(body)),
	}, nil
}

type fileFrontmatter struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
}

// parseFrontmatter returns the frontmatter date and title plus the body
// that follows it. Content without frontmatter is returned whole.
func parseFrontmatter(content []byte) (time.Time, string, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return time.Time{}, "", content
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}

	if fmEnd == 0 {
		return time.Time{}, "", content
	}

	body := bytes.Join(lines[fmEnd+1:], []byte("\n"))
	fmBytes := bytes.Join(lines[1:fmEnd], []byte("\n"))
	var fm fileFrontmatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return time.Time{}, "", body
	}

	var date time.Time
	if fm.Date != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", fm.Date, time.Local); err == nil {
			date = parsed
		}
	}

	return date, strings.TrimSpace(fm.Title), body
}

// firstHeading returns the text of a level-one heading that opens body.
func firstHeading(body []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(body))
	heading, ok := doc.FirstChild().(*ast.Heading)
	if !ok || heading.Level != 1 {
		return ""
	}

	var b strings.Builder
	lines := heading.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(body))
	}
	return strings.TrimSpace(b.String())
}
