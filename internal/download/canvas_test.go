package download

import (
	"image"
	"math"
	"testing"

	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type encodeCall struct {
	mimeType string
	quality  float64
}

// scriptedEncoder fails encodes for the listed MIME types and records every call.
type scriptedEncoder struct {
	host.Host
	failures map[string]error
	calls    []encodeCall
}

func (s *scriptedEncoder) EncodeSurfaceToDataURL(_ host.Surface, mimeType string, quality float64) (string, error) {
	s.calls = append(s.calls, encodeCall{mimeType, quality})
	if err := s.failures[mimeType]; err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64,", nil
}

func TestCanvasToDataURL(t *testing.T) {
	surface := image.NewRGBA(image.Rect(0, 0, 1, 1))
	unsupported := errors.Wrap(host.ErrUnsupportedFormat, "image/webp")
	other := errors.New("out of memory")

	for _, tc := range []struct {
		description string
		mimeType    string
		quality     float64
		failures    map[string]error
		expectURL   string
		expectErr   error
		expectCalls []encodeCall
	}{
		{
			description: "png ignores quality",
			mimeType:    "image/png",
			quality:     0.3,
			expectURL:   "data:image/png;base64,",
			expectCalls: []encodeCall{{"image/png", 1}},
		},
		{
			description: "jpeg passes quality",
			mimeType:    "image/jpeg",
			quality:     0.3,
			expectURL:   "data:image/jpeg;base64,",
			expectCalls: []encodeCall{{"image/jpeg", 0.3}},
		},
		{
			description: "out of range quality uses default",
			mimeType:    "image/webp",
			quality:     7,
			expectURL:   "data:image/webp;base64,",
			expectCalls: []encodeCall{{"image/webp", 0.8}},
		},
		{
			description: "NaN quality uses default",
			mimeType:    "image/jpeg",
			quality:     math.NaN(),
			expectURL:   "data:image/jpeg;base64,",
			expectCalls: []encodeCall{{"image/jpeg", 0.8}},
		},
		{
			description: "unsupported falls back to jpeg",
			mimeType:    "image/webp",
			quality:     0.5,
			failures:    map[string]error{"image/webp": unsupported},
			expectURL:   "data:image/jpeg;base64,",
			expectCalls: []encodeCall{{"image/webp", 0.5}, {"image/jpeg", 0.5}},
		},
		{
			description: "png fallback keeps caller quality",
			mimeType:    "image/png",
			quality:     0.4,
			failures:    map[string]error{"image/png": host.ErrUnsupportedFormat},
			expectURL:   "data:image/jpeg;base64,",
			expectCalls: []encodeCall{{"image/png", 1}, {"image/jpeg", 0.4}},
		},
		{
			description: "security retries once then fails",
			mimeType:    "image/png",
			quality:     0.8,
			failures: map[string]error{
				"image/png":  host.ErrSecurity,
				"image/jpeg": host.ErrSecurity,
			},
			expectErr:   host.ErrSecurity,
			expectCalls: []encodeCall{{"image/png", 1}, {"image/jpeg", 0.8}},
		},
		{
			description: "other errors propagate without retry",
			mimeType:    "image/jpeg",
			quality:     0.8,
			failures:    map[string]error{"image/jpeg": other},
			expectErr:   other,
			expectCalls: []encodeCall{{"image/jpeg", 0.8}},
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			encoder := &scriptedEncoder{failures: tc.failures}
			helper := New(encoder)
			u, err := helper.CanvasToDataURL(surface, tc.mimeType, tc.quality)
			assert.Equal(t, tc.expectCalls, encoder.calls)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectURL, u)
		})
	}
}

func TestCanvasToDataURLNoSurface(t *testing.T) {
	helper := New(&scriptedEncoder{})
	_, err := helper.CanvasToDataURL(nil, "image/png", 0.8)
	assert.Error(t, err)
}

func TestCanvasPNGIgnoresQuality(t *testing.T) {
	env := newTestEnv(t)
	img := testImage()
	low, err := env.helper.CanvasToDataURL(img, "image/png", 0.3)
	require.NoError(t, err)
	high, err := env.helper.CanvasToDataURL(img, "image/png", 0.9)
	require.NoError(t, err)
	assert.Equal(t, low, high)
}
