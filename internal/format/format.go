// Package format translates short format tokens like "jpeg" or "pdf" into file
// extensions and MIME types.
package format

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultExtension is used for tokens missing from the table.
	DefaultExtension = "file"
	// DefaultMimeType is used for tokens missing from the table.
	DefaultMimeType = "application/octet-stream"
)

const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeWEBP = "image/webp"
	MimeGIF  = "image/gif"
)

type Format struct {
	Extension string
	MimeType  string
}

var formats = map[string]Format{
	"jpeg": {"jpg", MimeJPEG},
	"jpg":  {"jpg", MimeJPEG},
	"png":  {"png", MimePNG},
	"webp": {"webp", MimeWEBP},
	"gif":  {"gif", MimeGIF},
	"bmp":  {"bmp", "image/bmp"},
	"ico":  {"ico", "image/x-icon"},
	"svg":  {"svg", "image/svg+xml"},
	"tiff": {"tiff", "image/tiff"},
	"pdf":  {"pdf", "application/pdf"},
	"txt":  {"txt", "text/plain"},
	"csv":  {"csv", "text/csv"},
	"json": {"json", "application/json"},
	"html": {"html", "text/html"},
	"xml":  {"xml", "application/xml"},
	"md":   {"md", "text/markdown"},
	"zip":  {"zip", "application/zip"},
	"gz":   {"gz", "application/gzip"},
	"mp3":  {"mp3", "audio/mpeg"},
	"wav":  {"wav", "audio/wav"},
	"mp4":  {"mp4", "video/mp4"},
}

// Lookup returns the Format registered for token, ignoring case.
func Lookup(token string) (Format, bool) {
	f, ok := formats[strings.ToLower(token)]
	return f, ok
}

// Resolve never fails. Unknown tokens resolve to the octet-stream defaults.
func Resolve(token string) Format {
	if f, ok := Lookup(token); ok {
		return f
	}
	return Format{Extension: DefaultExtension, MimeType: DefaultMimeType}
}

func Extension(token string) string {
	return Resolve(token).Extension
}

func MimeType(token string) string {
	return Resolve(token).MimeType
}

// Tokens returns every known token.
func Tokens() []string {
	tokens := make([]string, 0, len(formats))
	for token := range formats {
		tokens = append(tokens, token)
	}
	return tokens
}

// IsImage reports whether mimeType can be produced by encoding a drawable surface.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(BaseType(mimeType), "image/")
}

// IsLossy reports whether an encoding quality applies to mimeType.
func IsLossy(mimeType string) bool {
	switch BaseType(mimeType) {
	case MimeJPEG, MimeWEBP:
		return true
	default:
		return false
	}
}

// BaseType strips parameters, e.g. "text/plain; charset=utf-8" becomes "text/plain".
func BaseType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// Detect sniffs the MIME type of data from its leading bytes.
func Detect(data []byte) string {
	return BaseType(mimetype.Detect(data).String())
}
