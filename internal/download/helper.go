// Package download starts client-side downloads from in-memory data.
//
// A Helper resolves the target format, sanitizes the file name, turns the payload into
// something a link can point at, then clicks a hidden download link through its host.
package download

import (
	"time"

	"github.com/hack-pad/dlhelper/internal/config"
	"github.com/hack-pad/dlhelper/internal/display"
	"github.com/hack-pad/dlhelper/internal/filename"
	"github.com/hack-pad/dlhelper/internal/format"
	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/metrics"
	"github.com/hack-pad/dlhelper/internal/suggest"
	"github.com/hack-pad/dlhelper/internal/validate"
	"go.uber.org/atomic"
)

// Scheduler runs fn once, after delay.
type Scheduler func(delay time.Duration, fn func())

func afterFunc(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

type Helper struct {
	host     host.Host
	config   config.Config
	metrics  *metrics.Metrics
	schedule Scheduler
	pending  atomic.Int64
}

type Option func(*Helper)

func WithConfig(cfg config.Config) Option {
	return func(h *Helper) {
		h.config = cfg.Normalize()
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Helper) {
		h.metrics = m
	}
}

// WithScheduler replaces time.AfterFunc for delayed object reference releases.
func WithScheduler(s Scheduler) Option {
	return func(h *Helper) {
		if s != nil {
			h.schedule = s
		}
	}
}

func New(h host.Host, opts ...Option) *Helper {
	helper := &Helper{
		host:     h,
		config:   config.Default(),
		schedule: afterFunc,
	}
	for _, opt := range opts {
		opt(helper)
	}
	return helper
}

func (h *Helper) Config() config.Config {
	return h.config
}

// Pending returns the number of object references waiting for release.
func (h *Helper) Pending() int64 {
	return h.pending.Load()
}

func (h *Helper) FileExtension(token string) string {
	return format.Extension(token)
}

func (h *Helper) MimeType(token string) string {
	return format.MimeType(token)
}

func (h *Helper) CleanFilename(name string) string {
	return filename.Clean(name)
}

func (h *Helper) ErrorSuggestion(err error) string {
	return suggest.For(err)
}

// ValidateFile checks f against maxSizeMB, or the configured limit when maxSizeMB is not positive.
func (h *Helper) ValidateFile(f *validate.File, maxSizeMB float64) validate.Result {
	if maxSizeMB <= 0 {
		maxSizeMB = h.config.MaxSizeMB
	}
	return validate.Check(f, maxSizeMB)
}

func (h *Helper) FormatFileSize(bytes int64) string {
	return display.FileSize(bytes)
}

func (h *Helper) ShowStatus(target display.StatusTarget, message, statusType string) {
	display.ShowStatus(target, h.config.StatusClass, message, statusType)
}
