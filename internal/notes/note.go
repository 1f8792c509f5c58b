package notes

import "time"

// File is a Markdown capture file found on disk.
type File struct {
	Title   string    // frontmatter `title`, first heading, or file name
	Path    string    // absolute path
	RelPath string    // path relative to the scanned folder (for display)
	Date    time.Time // frontmatter `date`, a date in the file name, or mtime
	Entries int       // number of captured bullets
}
