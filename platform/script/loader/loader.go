package loader

import (
	"io"
	"net/url"
)

// Loader provides the source of a neutral object.
type Loader interface {
	// GetReader returns a fresh reader over the source. The caller closes it.
	GetReader() (io.ReadCloser, error)
	// GetSourceURL identifies the source (file://, string://, bytes://).
	GetSourceURL() *url.URL
}
