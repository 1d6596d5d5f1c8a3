// Package payload models the data a download can start from.
package payload

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/hack-pad/dlhelper/internal/bufferpool"
	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/machinebox/progress"
	"github.com/pkg/errors"
)

type Kind int

const (
	KindNone Kind = iota
	KindDataURL
	KindSurface
	KindBlob
	KindText
	KindBytes
	KindReader
)

func (k Kind) String() string {
	switch k {
	case KindDataURL:
		return "data-url"
	case KindSurface:
		return "surface"
	case KindBlob:
		return "blob"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindReader:
		return "reader"
	default:
		return "none"
	}
}

// Data is one of the constructors below. The zero value holds nothing.
type Data struct {
	kind     Kind
	text     string
	bytes    []byte
	mimeType string
	surface  host.Surface
	reader   io.Reader
	size     int64
}

// DataURL is passed to the download anchor unchanged. An empty url holds nothing.
func DataURL(url string) Data {
	if url == "" {
		return Data{}
	}
	return Data{kind: KindDataURL, text: url}
}

func Surface(s host.Surface) Data {
	if s == nil {
		return Data{}
	}
	return Data{kind: KindSurface, surface: s}
}

// Blob is binary data with its own MIME type. An empty mimeType defers to the download format.
func Blob(b []byte, mimeType string) Data {
	if len(b) == 0 {
		return Data{}
	}
	return Data{kind: KindBlob, bytes: b, mimeType: mimeType}
}

func Text(s string) Data {
	if s == "" {
		return Data{}
	}
	return Data{kind: KindText, text: s}
}

func Bytes(b []byte) Data {
	if len(b) == 0 {
		return Data{}
	}
	return Data{kind: KindBytes, bytes: b}
}

// Reader is drained when the download starts. size may be 0 if unknown, which disables progress.
func Reader(r io.Reader, size int64) Data {
	if r == nil {
		return Data{}
	}
	return Data{kind: KindReader, reader: r, size: size}
}

func (d Data) Kind() Kind {
	return d.kind
}

func (d Data) IsZero() bool {
	return d.kind == KindNone
}

// URL returns the data URL of a KindDataURL payload.
func (d Data) URL() string {
	return d.text
}

func (d Data) Surface() host.Surface {
	return d.surface
}

// MimeType is the Blob's own type, if any.
func (d Data) MimeType() string {
	return d.mimeType
}

const progressInterval = 100 * time.Millisecond

// ReadAll returns the raw bytes for Blob, Text, Bytes and Reader payloads.
// onProgress, if set, receives percentages while a sized Reader is drained.
func (d Data) ReadAll(onProgress func(percent float64)) ([]byte, error) {
	switch d.kind {
	case KindBlob, KindBytes:
		return d.bytes, nil
	case KindText:
		return []byte(d.text), nil
	case KindReader:
		return readAll(d.reader, d.size, onProgress)
	default:
		return nil, errors.Errorf("payload: %s data has no raw bytes", d.kind)
	}
}

var copyBuffers = bufferpool.New(32*1024, 4)

// writerOnly hides bytes.Buffer's ReadFrom so copies go through pooled buffers.
type writerOnly struct {
	io.Writer
}

func readAll(r io.Reader, size int64, onProgress func(float64)) ([]byte, error) {
	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	progressR := progress.NewReader(r)
	var ticks <-chan progress.Progress
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	if size > 0 {
		ticks = progress.NewTicker(ctx, progressR, size, progressInterval)
		go func() {
			defer close(done)
			for p := range ticks {
				log.Debugf("Reading payload: %.1f%%", p.Percent())
				if onProgress != nil {
					onProgress(p.Percent())
				}
			}
		}()
	} else {
		close(done)
	}

	chunk := copyBuffers.Get()
	_, err := io.CopyBuffer(writerOnly{&buf}, progressR, chunk.Data)
	chunk.Release()
	cancel()
	<-done
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read payload")
	}
	return buf.Bytes(), nil
}
