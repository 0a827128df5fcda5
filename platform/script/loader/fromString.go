package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/neutralobj/go-neutralobj/internal/helpers"
)

// FromString loads an object's source held in memory.
type FromString struct {
	content   string
	sourceURL *url.URL
}

func NewFromString(content string) (*FromString, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrScriptNotAvailable)
	}

	return &FromString{
		content: content,
		sourceURL: &url.URL{
			Scheme: "string",
			Host:   "inline",
			Path:   "/" + helpers.ShortID([]byte(content), 8),
		},
	}, nil
}

func (l *FromString) String() string {
	return fmt.Sprintf("loader.FromString{Chars: %d}", len(l.content))
}

func (l *FromString) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(l.content)), nil
}

func (l *FromString) GetSourceURL() *url.URL {
	return l.sourceURL
}
