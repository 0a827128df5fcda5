package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/neutralobj/go-neutralobj/internal/helpers"
)

// FromBytes loads binary objects, such as wasm modules, held in memory.
type FromBytes struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromBytes rejects empty content, and text content that is only whitespace.
func NewFromBytes(content []byte) (*FromBytes, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is empty", ErrScriptNotAvailable)
	}
	if !isBinary(content) && len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: content contains only whitespace", ErrScriptNotAvailable)
	}

	return &FromBytes{
		content: content,
		sourceURL: &url.URL{
			Scheme: "bytes",
			Host:   "inline",
			Path:   "/" + helpers.ShortID(content, 8),
		},
	}, nil
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d}", len(l.content))
}

func (l *FromBytes) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

func (l *FromBytes) GetSourceURL() *url.URL {
	return l.sourceURL
}

// isBinary reports null bytes or control characters other than common whitespace.
func isBinary(content []byte) bool {
	for _, b := range content {
		if b == 0 || (b < 32 && b != '\n' && b != '\r' && b != '\t' && b != '\f' && b != '\v') {
			return true
		}
	}
	return false
}
