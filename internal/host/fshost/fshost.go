// Package fshost implements host.Host over a hackpadfs filesystem: clicking a download
// anchor writes the linked content into a directory.
package fshost

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/hack-pad/dlhelper/internal/format"
	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/hack-pad/hackpadfs"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

const refPrefix = "blob:dlhelper/"

// Tainted is implemented by surfaces which must not be exported.
type Tainted interface {
	Tainted() bool
}

type objectRef struct {
	data     []byte
	mimeType string
}

type Host struct {
	fs  hackpadfs.FS
	dir string

	mu       sync.Mutex
	refs     map[string]objectRef
	released []string
	anchors  map[*anchor]struct{}

	clicks atomic.Int64
}

var _ host.Host = &Host{}

// New returns a Host saving downloads into dir on fs. dir must exist.
func New(fs hackpadfs.FS, dir string) *Host {
	return &Host{
		fs:      fs,
		dir:     dir,
		refs:    make(map[string]objectRef),
		anchors: make(map[*anchor]struct{}),
	}
}

func (h *Host) CreateObjectReference(data []byte, mimeType string) (string, error) {
	ref := refPrefix + uuid.NewString()
	h.mu.Lock()
	h.refs[ref] = objectRef{data: data, mimeType: mimeType}
	h.mu.Unlock()
	log.Debug("Created object reference ", ref, " (", mimeType, ")")
	return ref, nil
}

func (h *Host) ReleaseObjectReference(ref string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.refs[ref]; !ok {
		return
	}
	delete(h.refs, ref)
	h.released = append(h.released, ref)
	log.Debug("Released object reference ", ref)
}

// Live returns the object references not yet released.
func (h *Host) Live() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	refs := make([]string, 0, len(h.refs))
	for ref := range h.refs {
		refs = append(refs, ref)
	}
	return refs
}

// Released returns released object references in release order.
func (h *Host) Released() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.released...)
}

// Attached returns the number of anchors created and not yet removed.
func (h *Host) Attached() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.anchors)
}

// Clicks returns the number of anchors clicked.
func (h *Host) Clicks() int64 {
	return h.clicks.Load()
}

func (h *Host) CreateDownloadAnchor(href, filename string) (host.Anchor, error) {
	if filename == "" || path.Base(filename) != filename {
		return nil, errors.Errorf("Invalid download file name: %q", filename)
	}
	a := &anchor{host: h, href: href, filename: filename}
	h.mu.Lock()
	h.anchors[a] = struct{}{}
	h.mu.Unlock()
	return a, nil
}

func (h *Host) resolve(href string) ([]byte, error) {
	if host.IsDataURL(href) {
		_, data, err := host.DecodeDataURL(href)
		return data, err
	}
	h.mu.Lock()
	ref, ok := h.refs[href]
	h.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("Object reference not found: %s", href)
	}
	return ref.data, nil
}

func (h *Host) save(href, filename string) error {
	data, err := h.resolve(href)
	if err != nil {
		return err
	}
	filePath := path.Join(h.dir, filename)
	if err := hackpadfs.WriteFullFile(h.fs, filePath, data, 0644); err != nil {
		return errors.Wrapf(err, "Failed to save %s", filePath)
	}
	h.clicks.Inc()
	log.Debugf("Saved %d bytes to %s", len(data), filePath)
	return nil
}

type anchor struct {
	host     *Host
	href     string
	filename string
}

func (a *anchor) Click() error {
	return a.host.save(a.href, a.filename)
}

func (a *anchor) Remove() {
	a.host.mu.Lock()
	delete(a.host.anchors, a)
	a.host.mu.Unlock()
}

func (h *Host) EncodeSurfaceToDataURL(s host.Surface, mimeType string, quality float64) (string, error) {
	if t, ok := s.(Tainted); ok && t.Tainted() {
		return "", host.ErrSecurity
	}
	img, ok := s.(image.Image)
	if !ok {
		return "", errors.Errorf("Surface %T is not an image", s)
	}

	var buf bytes.Buffer
	var err error
	mimeType = format.BaseType(mimeType)
	switch mimeType {
	case format.MimePNG:
		err = png.Encode(&buf, img)
	case format.MimeJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(quality)})
	case format.MimeGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		return "", errors.Wrap(host.ErrUnsupportedFormat, mimeType)
	}
	if err != nil {
		return "", errors.Wrapf(err, "Failed to encode %s", mimeType)
	}
	return host.EncodeDataURL(mimeType, buf.Bytes()), nil
}

func jpegQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	default:
		return q
	}
}
