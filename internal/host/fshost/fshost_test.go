package fshost

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost(t *testing.T) (*Host, hackpadfs.FS) {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.MkdirAll(fs, "downloads", 0755))
	return New(fs, "downloads"), fs
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 100, A: 255})
		}
	}
	return img
}

type taintedImage struct {
	*image.RGBA
}

func (taintedImage) Tainted() bool { return true }

func TestObjectReferences(t *testing.T) {
	h, fs := newHost(t)
	ref, err := h.CreateObjectReference([]byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "blob:dlhelper/"))
	assert.Equal(t, []string{ref}, h.Live())

	a, err := h.CreateDownloadAnchor(ref, "hello.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, h.Attached())
	require.NoError(t, a.Click())
	a.Remove()
	assert.Equal(t, 0, h.Attached())
	assert.Equal(t, int64(1), h.Clicks())

	contents, err := hackpadfs.ReadFile(fs, "downloads/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(contents))

	h.ReleaseObjectReference(ref)
	h.ReleaseObjectReference(ref)
	assert.Empty(t, h.Live())
	assert.Equal(t, []string{ref}, h.Released())

	a, err = h.CreateDownloadAnchor(ref, "again.txt")
	require.NoError(t, err)
	assert.Error(t, a.Click())
}

func TestDataURLAnchor(t *testing.T) {
	h, fs := newHost(t)
	a, err := h.CreateDownloadAnchor(host.EncodeDataURL("text/plain", []byte("hi there")), "note.txt")
	require.NoError(t, err)
	require.NoError(t, a.Click())
	contents, err := hackpadfs.ReadFile(fs, "downloads/note.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi there", string(contents))
}

func TestInvalidAnchorName(t *testing.T) {
	h, _ := newHost(t)
	for _, name := range []string{"", "a/b.txt", "../x"} {
		_, err := h.CreateDownloadAnchor("data:,", name)
		assert.Error(t, err, name)
	}
}

func TestEncodeSurface(t *testing.T) {
	h, _ := newHost(t)
	img := testImage()

	t.Run("png ignores quality", func(t *testing.T) {
		low, err := h.EncodeSurfaceToDataURL(img, "image/png", 0.1)
		require.NoError(t, err)
		high, err := h.EncodeSurfaceToDataURL(img, "image/png", 1)
		require.NoError(t, err)
		assert.Equal(t, low, high)

		mimeType, data, err := host.DecodeDataURL(low)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
		_, err = png.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("jpeg", func(t *testing.T) {
		u, err := h.EncodeSurfaceToDataURL(img, "image/jpeg", 0.5)
		require.NoError(t, err)
		mimeType, data, err := host.DecodeDataURL(u)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mimeType)
		_, err = jpeg.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("webp unsupported", func(t *testing.T) {
		_, err := h.EncodeSurfaceToDataURL(img, "image/webp", 0.8)
		assert.ErrorIs(t, err, host.ErrUnsupportedFormat)
		assert.True(t, host.IsFallbackError(err))
	})

	t.Run("tainted", func(t *testing.T) {
		_, err := h.EncodeSurfaceToDataURL(taintedImage{img}, "image/png", 0.8)
		assert.ErrorIs(t, err, host.ErrSecurity)
	})
}

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 80, jpegQuality(0.8))
	assert.Equal(t, 1, jpegQuality(0))
	assert.Equal(t, 100, jpegQuality(3))
}
