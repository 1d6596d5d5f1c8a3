package download

import (
	"github.com/hack-pad/dlhelper/internal/config"
	"github.com/hack-pad/dlhelper/internal/format"
	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/hack-pad/dlhelper/internal/metrics"
	"github.com/pkg/errors"
)

// CanvasToDataURL encodes s as mimeType. Quality is ignored for PNG, and values outside
// [0, 1] use the configured default.
//
// If the host refuses the format, or refuses to export the surface at all, the encode is
// retried once as JPEG. A tainted surface fails the retry too, but it is still attempted.
func (h *Helper) CanvasToDataURL(s host.Surface, mimeType string, quality float64) (string, error) {
	if s == nil {
		return "", errors.New("No surface to encode")
	}
	if !config.ValidQuality(quality) {
		quality = h.config.Quality
	}
	encodeQuality := quality
	if format.BaseType(mimeType) == format.MimePNG {
		encodeQuality = 1
	}

	dataURL, err := h.host.EncodeSurfaceToDataURL(s, mimeType, encodeQuality)
	if err == nil {
		return dataURL, nil
	}
	if !host.IsFallbackError(err) {
		return "", errors.Wrapf(err, "Failed to encode surface as %s", mimeType)
	}

	reason := metrics.ReasonUnsupported
	if errors.Is(err, host.ErrSecurity) {
		reason = metrics.ReasonSecurity
	}
	h.metrics.Fallback(reason)
	log.Warnf("Encoding surface as %s failed, retrying as %s: %v", mimeType, format.MimeJPEG, err)

	dataURL, err = h.host.EncodeSurfaceToDataURL(s, format.MimeJPEG, quality)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to encode surface as %s", format.MimeJPEG)
	}
	return dataURL, nil
}
