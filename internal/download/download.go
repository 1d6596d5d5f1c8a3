package download

import (
	"fmt"

	"github.com/hack-pad/dlhelper/internal/config"
	"github.com/hack-pad/dlhelper/internal/filename"
	"github.com/hack-pad/dlhelper/internal/format"
	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/hack-pad/dlhelper/internal/payload"
	"github.com/hack-pad/dlhelper/internal/suggest"
	"github.com/pkg/errors"
)

// ErrMissingParameters is reported when data, file name or format is absent.
var ErrMissingParameters = errors.New("Missing required parameters for download")

// Result is the outcome of DownloadFile. Either Filename or Error and Suggestion are set.
type Result struct {
	Success    bool   `json:"success"`
	Filename   string `json:"filename,omitempty"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type downloadOptions struct {
	quality    float64
	onProgress func(percent float64)
}

type DownloadOption func(*downloadOptions)

// Quality sets the lossy image encoding quality. Values outside [0, 1] are ignored.
func Quality(q float64) DownloadOption {
	return func(o *downloadOptions) {
		if config.ValidQuality(q) {
			o.quality = q
		}
	}
}

// OnProgress receives read progress percentages for sized Reader payloads.
func OnProgress(fn func(percent float64)) DownloadOption {
	return func(o *downloadOptions) {
		o.onProgress = fn
	}
}

// DownloadFile saves data as name, converted to the given format token. It never panics or
// returns an error: failures are reported in the Result along with a user-facing suggestion.
func (h *Helper) DownloadFile(data payload.Data, name, formatToken string, opts ...DownloadOption) (result Result) {
	o := downloadOptions{quality: h.config.Quality}
	for _, opt := range opts {
		opt(&o)
	}

	defer func() {
		if r := recover(); r != nil {
			result = failure(recoveredError(r))
		}
		h.metrics.Download(result.Success)
	}()

	target, err := h.download(data, name, formatToken, o)
	if err != nil {
		return failure(err)
	}
	return Result{Success: true, Filename: target}
}

func failure(err error) Result {
	log.Warn("Download failed: ", err)
	return Result{
		Success:    false,
		Error:      err.Error(),
		Suggestion: suggest.For(err),
	}
}

func recoveredError(r interface{}) error {
	switch r := r.(type) {
	case error:
		return r
	default:
		return errors.Errorf("%+v", r)
	}
}

func (h *Helper) download(data payload.Data, name, formatToken string, o downloadOptions) (string, error) {
	if data.IsZero() || name == "" || formatToken == "" {
		return "", ErrMissingParameters
	}

	f := format.Resolve(formatToken)
	target := filename.Download(name, f.Extension, h.config.Suffix)
	log.Debugf("Downloading %s payload as %s (%s)", data.Kind(), target, f.MimeType)

	href, isRef, err := h.resolveHref(data, f.MimeType, o)
	if err != nil {
		return "", err
	}
	if isRef {
		defer h.releaseLater(href)
	}

	anchor, err := h.host.CreateDownloadAnchor(href, target)
	if err != nil {
		return "", errors.Wrap(err, "Failed to create download link")
	}
	defer anchor.Remove()
	if err := anchor.Click(); err != nil {
		return "", errors.Wrap(err, "Failed to start download")
	}
	return target, nil
}

// resolveHref turns data into something a link can navigate to. isRef is true when the
// returned href is a fresh object reference the caller must release.
func (h *Helper) resolveHref(data payload.Data, mimeType string, o downloadOptions) (href string, isRef bool, err error) {
	switch data.Kind() {
	case payload.KindDataURL:
		if !host.IsDataURL(data.URL()) {
			return "", false, errors.Errorf("Invalid data URL: %q", truncate(data.URL(), 32))
		}
		return data.URL(), false, nil
	case payload.KindSurface:
		href, err := h.CanvasToDataURL(data.Surface(), mimeType, o.quality)
		return href, false, err
	}

	b, err := data.ReadAll(o.onProgress)
	if err != nil {
		return "", false, err
	}
	if data.Kind() == payload.KindBlob && data.MimeType() != "" {
		mimeType = data.MimeType()
	}
	ref, err := h.host.CreateObjectReference(b, mimeType)
	if err != nil {
		return "", false, errors.Wrap(err, "Failed to create object reference")
	}
	h.metrics.SetPending(h.pending.Inc())
	h.metrics.Size(len(b))
	return ref, true, nil
}

func (h *Helper) releaseLater(ref string) {
	h.schedule(h.config.ReleaseDelay, func() {
		h.host.ReleaseObjectReference(ref)
		h.metrics.SetPending(h.pending.Dec())
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprint(s[:n], "...")
}
