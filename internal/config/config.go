// Package config holds the tunables shared by every download host.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DefaultQuality      = 0.8
	DefaultMaxSizeMB    = 5
	DefaultSuffix       = "-converted"
	DefaultReleaseDelay = 100 * time.Millisecond
	DefaultStatusClass  = "status"
)

// Environment variable names read by FromEnv.
const (
	EnvQuality      = "DLHELPER_QUALITY"
	EnvMaxSizeMB    = "DLHELPER_MAX_SIZE_MB"
	EnvSuffix       = "DLHELPER_SUFFIX"
	EnvReleaseDelay = "DLHELPER_RELEASE_DELAY"
	EnvStatusClass  = "DLHELPER_STATUS_CLASS"
)

type Config struct {
	// Quality is the lossy image encoding quality in [0, 1].
	Quality float64
	// MaxSizeMB is the default upper bound used by file validation.
	MaxSizeMB float64
	// Suffix is appended to every sanitized download name, before the extension.
	Suffix string
	// ReleaseDelay is how long an object reference stays alive after its download starts.
	ReleaseDelay time.Duration
	// StatusClass is the base CSS class for status messages.
	StatusClass string
}

func Default() Config {
	return Config{
		Quality:      DefaultQuality,
		MaxSizeMB:    DefaultMaxSizeMB,
		Suffix:       DefaultSuffix,
		ReleaseDelay: DefaultReleaseDelay,
		StatusClass:  DefaultStatusClass,
	}
}

// Normalize replaces out of range values with their defaults.
func (c Config) Normalize() Config {
	if !ValidQuality(c.Quality) {
		c.Quality = DefaultQuality
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.ReleaseDelay < 0 {
		c.ReleaseDelay = DefaultReleaseDelay
	}
	if c.StatusClass == "" {
		c.StatusClass = DefaultStatusClass
	}
	return c
}

func ValidQuality(q float64) bool {
	return q >= 0 && q <= 1
}

// LoadEnvFiles applies .env, then .env.local on top of it. Missing files are skipped.
func LoadEnvFiles(dir string) error {
	base := dir + string(os.PathSeparator) + ".env"
	if _, err := os.Stat(base); err == nil {
		if err := godotenv.Load(base); err != nil {
			return errors.Wrap(err, "Failed to load .env")
		}
	}
	local := base + ".local"
	if _, err := os.Stat(local); err == nil {
		if err := godotenv.Overload(local); err != nil {
			return errors.Wrap(err, "Failed to load .env.local")
		}
	}
	return nil
}

// FromEnv overlays values found through lookup onto the defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvQuality); ok {
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return cfg, errors.Wrapf(err, "Invalid %s", EnvQuality)
		}
		if !ValidQuality(q) {
			return cfg, errors.Errorf("%s must be in [0, 1]: %v", EnvQuality, q)
		}
		cfg.Quality = q
	}
	if v, ok := lookup(EnvMaxSizeMB); ok {
		mb, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return cfg, errors.Wrapf(err, "Invalid %s", EnvMaxSizeMB)
		}
		cfg.MaxSizeMB = mb
	}
	if v, ok := lookup(EnvSuffix); ok {
		cfg.Suffix = v
	}
	if v, ok := lookup(EnvReleaseDelay); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return cfg, errors.Wrapf(err, "Invalid %s", EnvReleaseDelay)
		}
		cfg.ReleaseDelay = d
	}
	if v, ok := lookup(EnvStatusClass); ok {
		cfg.StatusClass = v
	}
	return cfg.Normalize(), nil
}

// Load reads .env files from dir and then the process environment.
func Load(dir string) (Config, error) {
	if err := LoadEnvFiles(dir); err != nil {
		return Default(), err
	}
	return FromEnv(os.LookupEnv)
}
