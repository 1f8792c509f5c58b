package notes

import "github.com/sahilm/fuzzy"

// Filter returns the files whose title or relative path fuzzy-matches query,
// best match first. An empty query returns files unchanged.
func Filter(files []File, query string) []File {
	if query == "" {
		return files
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Title + " " + f.RelPath
	}

	matches := fuzzy.Find(query, names)
	result := make([]File, len(matches))
	for i, match := range matches {
		result[i] = files[match.Index]
	}
	return result
}
