// Package validate checks user supplied files against size and type constraints.
package validate

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/hack-pad/dlhelper/internal/config"
	"github.com/hack-pad/dlhelper/internal/format"
)

const (
	ErrNoFile      = "No file selected"
	ErrInvalidType = "Invalid file type"
)

const bytesPerMB = 1024 * 1024

// File describes a selected file. Type is its declared MIME type.
type File struct {
	Name string
	Size int64
	Type string
}

type FileInfo struct {
	Name      string
	Size      int64
	Type      string
	Extension string
}

type Result struct {
	Valid  bool
	Errors []string
	// Info is nil when no file was given.
	Info *FileInfo
}

// FromBytes describes in-memory data, taking its type from the name or, failing that, from the content.
func FromBytes(name string, data []byte) *File {
	mimeType := mime.TypeByExtension(path.Ext(name))
	if mimeType == "" && len(data) > 0 {
		mimeType = format.Detect(data)
	}
	return &File{
		Name: name,
		Size: int64(len(data)),
		Type: format.BaseType(mimeType),
	}
}

// SizeLimitError is the message reported for files larger than maxSizeMB.
func SizeLimitError(maxSizeMB float64) string {
	return fmt.Sprintf("File size exceeds %gMB limit", maxSizeMB)
}

// Check validates f. A maxSizeMB of zero or less uses the default limit.
// Violations accumulate, except a nil file which is reported on its own.
func Check(f *File, maxSizeMB float64) Result {
	if f == nil {
		return Result{Valid: false, Errors: []string{ErrNoFile}}
	}
	if maxSizeMB <= 0 {
		maxSizeMB = config.DefaultMaxSizeMB
	}

	var errs []string
	if float64(f.Size) > maxSizeMB*bytesPerMB {
		errs = append(errs, SizeLimitError(maxSizeMB))
	}
	if f.Type == "" {
		errs = append(errs, ErrInvalidType)
	}
	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Info: &FileInfo{
			Name:      f.Name,
			Size:      f.Size,
			Type:      f.Type,
			Extension: format.Extension(suffix(f.Name)),
		},
	}
}

// suffix is everything after the final '.', lower-cased. A name without a '.' is all suffix.
func suffix(name string) string {
	return strings.ToLower(name[strings.LastIndexByte(name, '.')+1:])
}
