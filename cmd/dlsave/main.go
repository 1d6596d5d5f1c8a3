//go:build !js
// +build !js

// Command dlsave runs the download helper natively, saving each input file into a directory
// the same way the browser build hands it to the user.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hack-pad/dlhelper/internal/config"
	"github.com/hack-pad/dlhelper/internal/download"
	"github.com/hack-pad/dlhelper/internal/format"
	"github.com/hack-pad/dlhelper/internal/host/fshost"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/hack-pad/dlhelper/internal/metrics"
	"github.com/hack-pad/dlhelper/internal/payload"
	"github.com/hack-pad/dlhelper/internal/validate"
	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	format      string
	outDir      string
	envDir      string
	quality     float64
	maxMB       float64
	logLevel    string
	showMetrics bool
}

func run(args []string, stdout, stderr io.Writer) int {
	set := flag.NewFlagSet("dlsave", flag.ContinueOnError)
	set.SetOutput(stderr)
	set.Usage = func() {
		fmt.Fprintln(set.Output(), "Usage: dlsave [flags] FILE...")
		set.PrintDefaults()
	}
	var opts options
	set.StringVar(&opts.format, "format", "", "Format token to save as, e.g. png or pdf. Defaults to each file's extension.")
	set.StringVar(&opts.outDir, "out", ".", "Directory to save into")
	set.StringVar(&opts.envDir, "env", ".", "Directory containing .env and .env.local")
	set.Float64Var(&opts.quality, "quality", -1, "Lossy image quality between 0 and 1. Defaults to DLHELPER_QUALITY.")
	set.Float64Var(&opts.maxMB, "max-mb", 0, "Maximum input size in MB. Defaults to DLHELPER_MAX_SIZE_MB.")
	set.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, log, warn or error")
	set.BoolVar(&opts.showMetrics, "metrics", false, "Print metrics after saving")
	if err := set.Parse(args); err != nil {
		return 2
	}
	if set.NArg() == 0 {
		set.Usage()
		return 2
	}

	if opts.logLevel != "" {
		level := log.ParseLevel(opts.logLevel)
		if !level.Valid() {
			fmt.Fprintf(stderr, "Invalid log level: %q\n", opts.logLevel)
			return 2
		}
		log.SetOutput(stderr)
		log.SetLevel(level)
	}

	failed, err := saveAll(opts, set.Args(), stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// saveAll saves every file in paths and returns the number that failed.
func saveAll(opts options, paths []string, stdout io.Writer) (int, error) {
	cfg, err := config.Load(opts.envDir)
	if err != nil {
		return 0, err
	}

	fs, dir, err := outputDir(opts.outDir)
	if err != nil {
		return 0, err
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return 0, err
	}
	helper := download.New(fshost.New(fs, dir),
		download.WithConfig(cfg),
		download.WithMetrics(m),
		// nothing else can hold the reference once the file is written
		download.WithScheduler(func(_ time.Duration, fn func()) { fn() }),
	)

	failed := 0
	for _, p := range paths {
		if !saveFile(helper, opts, p, stdout) {
			failed++
		}
	}

	if opts.showMetrics {
		if err := writeMetrics(reg, stdout); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func outputDir(outDir string) (hackpadfs.FS, string, error) {
	absDir, err := filepath.Abs(outDir)
	if err != nil {
		return nil, "", err
	}
	fs := osfs.NewFS()
	dir, err := fs.FromOSPath(absDir)
	if err != nil {
		return nil, "", errors.Wrapf(err, "Invalid output directory %q", outDir)
	}
	if err := hackpadfs.MkdirAll(fs, dir, 0755); err != nil {
		return nil, "", errors.Wrapf(err, "Failed to create output directory %q", outDir)
	}
	return fs, dir, nil
}

func saveFile(helper *download.Helper, opts options, filePath string, stdout io.Writer) bool {
	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(stdout, "%s: %s\n", filePath, err)
		return false
	}
	file := validate.FromBytes(filepath.Base(filePath), data)
	check := helper.ValidateFile(file, opts.maxMB)
	if !check.Valid {
		fmt.Fprintf(stdout, "%s: %s\n", filePath, strings.Join(check.Errors, "; "))
		return false
	}

	token := opts.format
	if token == "" {
		token = check.Info.Extension
	}

	var downloadOpts []download.DownloadOption
	if opts.quality >= 0 {
		downloadOpts = append(downloadOpts, download.Quality(opts.quality))
	}
	result := helper.DownloadFile(inputPayload(data, file.Type, token), file.Name, token, downloadOpts...)
	if !result.Success {
		fmt.Fprintf(stdout, "%s: %s\n  %s\n", filePath, result.Error, result.Suggestion)
		return false
	}
	fmt.Fprintf(stdout, "%s -> %s (%s)\n", filePath, result.Filename, helper.FormatFileSize(file.Size))
	return true
}

// inputPayload decodes image inputs into surfaces when an image format is requested, so they can be re-encoded.
func inputPayload(data []byte, mimeType, token string) payload.Data {
	if format.IsImage(format.MimeType(token)) && format.IsImage(mimeType) {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			return payload.Surface(img)
		}
		log.Debug("Saving undecodable image as-is: ", err)
	}
	return payload.Blob(data, mimeType)
}

func writeMetrics(gatherer prometheus.Gatherer, w io.Writer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
