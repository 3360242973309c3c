package quotes

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
	"github.com/jsamuelsen/classroom-viewer/web"
)

var (
	_ ports.QuoteSource = (*FileSource)(nil)
	_ ports.QuoteSource = (*EmbeddedSource)(nil)
)

// FileSource reads the quote list from a path on disk.
type FileSource struct {
	Path string
}

// NewFileSource returns a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// LoadQuotes reads and parses the file. A missing or unreadable file is a
// validation error like any other bad list.
func (s *FileSource) LoadQuotes(ctx context.Context) (domain.QuoteList, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuoteList{}, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.QuoteList{}, domain.NewValidationErrorWithValue(field, "quote file does not exist", s.Path)
		}

		return domain.QuoteList{}, domain.NewValidationErrorWithValue(field, "reading quote file: "+err.Error(), s.Path)
	}

	return Parse(data)
}

// EmbeddedSource serves the list bundled into the binary.
type EmbeddedSource struct{}

// LoadQuotes parses the embedded list.
func (EmbeddedSource) LoadQuotes(ctx context.Context) (domain.QuoteList, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuoteList{}, err
	}

	data, err := web.Quotes()
	if err != nil {
		return domain.QuoteList{}, domain.NewValidationError(field, "embedded quote list missing")
	}

	return Parse(data)
}
