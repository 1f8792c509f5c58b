package capture

import (
	"errors"

	"traynote/internal/logs"
)

// Resolver supplies the file the next note should go to.
type Resolver interface {
	CurrentFilePath() string
}

// Result describes a note that was written.
type Result struct {
	Path  string
	Entry Entry
}

// Service connects a Resolver to a Writer. Capture surfaces hand it text and
// nothing else; it owns the decision of where the text goes.
type Service struct {
	resolver Resolver
	writer   *Writer
}

func NewService(resolver Resolver, writer *Writer) *Service {
	if writer == nil {
		writer = NewWriter()
	}
	return &Service{resolver: resolver, writer: writer}
}

// Capture appends text to the currently resolved file.
func (s *Service) Capture(text string) (Result, error) {
	path := s.resolver.CurrentFilePath()
	entry, err := s.writer.Append(text, path)
	if err != nil {
		return Result{Path: path}, err
	}
	logs.Logger.Info().Str("path", path).Int("chars", len(entry.Text)).Msg("note captured")
	return Result{Path: path, Entry: entry}, nil
}

// Save is the fire-and-forget entry point for capture surfaces: failures are
// logged and reported as false, never returned. Empty input is not a failure
// and is not logged as one.
func (s *Service) Save(text string) bool {
	res, err := s.Capture(text)
	if errors.Is(err, ErrEmptyNote) {
		return false
	}
	if err != nil {
		logs.Logger.Error().Err(err).Str("path", res.Path).Msg("failed to save note")
		return false
	}
	return true
}

// CurrentFilePath exposes the resolver for "open inbox" style actions.
func (s *Service) CurrentFilePath() string {
	return s.resolver.CurrentFilePath()
}
