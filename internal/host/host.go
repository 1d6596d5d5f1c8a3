// Package host defines the environment capabilities a download needs: anchors, object
// references and surface encoding. The browser provides them under js, and package fshost
// provides them over a filesystem.
package host

import (
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrSecurity is returned when a surface may not be exported, e.g. a canvas tainted by cross-origin data.
	ErrSecurity = errors.New("SecurityError: surface is tainted by cross-origin data")
	// ErrUnsupportedFormat is returned when the host cannot encode the requested image format.
	ErrUnsupportedFormat = errors.New("image format not supported")
)

// Surface is a drawable, like a canvas or an image.Image.
type Surface interface {
	Bounds() image.Rectangle
}

// Anchor is an invisible, attached download link.
type Anchor interface {
	Click() error
	Remove()
}

type Host interface {
	// CreateDownloadAnchor attaches a hidden link to href which saves as filename.
	CreateDownloadAnchor(href, filename string) (Anchor, error)
	// CreateObjectReference registers data and returns a navigable reference to it.
	CreateObjectReference(data []byte, mimeType string) (string, error)
	ReleaseObjectReference(ref string)
	// EncodeSurfaceToDataURL encodes s. Quality only applies to lossy formats.
	EncodeSurfaceToDataURL(s Surface, mimeType string, quality float64) (string, error)
}

// IsFallbackError reports whether err warrants retrying an encode as JPEG.
func IsFallbackError(err error) bool {
	return errors.Is(err, ErrSecurity) || errors.Is(err, ErrUnsupportedFormat)
}
