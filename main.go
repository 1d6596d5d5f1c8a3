//go:build js
// +build js

package main

import (
	"syscall/js"
	"time"

	"github.com/hack-pad/dlhelper/internal/config"
	"github.com/hack-pad/dlhelper/internal/download"
	"github.com/hack-pad/dlhelper/internal/global"
	"github.com/hack-pad/dlhelper/internal/host/browser"
	"github.com/hack-pad/dlhelper/internal/interop"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/pkg/errors"
)

func main() {
	helper := download.New(browser.New(), download.WithConfig(loadConfig()))
	register(global.Object(), helper)
	global.Set("ready", true)
	log.Debug("dlHelper ready")
	select {}
}

// loadConfig publishes the defaults on dlHelper.config, then reads back anything the page set before loading.
func loadConfig() config.Config {
	defaults := config.Default()
	global.SetDefault("config", map[string]interface{}{})
	obj := global.Get("config")
	setDefault := func(key string, value interface{}) {
		if obj.Get(key).IsUndefined() {
			obj.Set(key, value)
		}
	}
	setDefault("quality", defaults.Quality)
	setDefault("maxSizeMB", defaults.MaxSizeMB)
	setDefault("suffix", defaults.Suffix)
	setDefault("releaseDelayMs", defaults.ReleaseDelay.Milliseconds())
	setDefault("statusClass", defaults.StatusClass)

	entries := interop.Entries(obj)
	cfg := config.Config{
		Quality:      interop.OptionalFloat(entries["quality"], defaults.Quality),
		MaxSizeMB:    interop.OptionalFloat(entries["maxSizeMB"], defaults.MaxSizeMB),
		Suffix:       defaults.Suffix,
		ReleaseDelay: defaults.ReleaseDelay,
		StatusClass:  interop.OptionalString(entries["statusClass"]),
	}
	if suffix := entries["suffix"]; suffix.Type() == js.TypeString {
		cfg.Suffix = suffix.String()
	}
	if ms := entries["releaseDelayMs"]; ms.Type() == js.TypeNumber {
		cfg.ReleaseDelay = time.Duration(ms.Float() * float64(time.Millisecond))
	}
	return cfg.Normalize()
}

func register(obj js.Value, helper *download.Helper) {
	interop.SetPromiseFunc(obj, "downloadFile", func(args []js.Value) (interface{}, error) {
		data, err := browser.Payload(interop.Arg(args, 0))
		if err != nil {
			return resultValue(download.Result{
				Error:      err.Error(),
				Suggestion: helper.ErrorSuggestion(err),
			}), nil
		}
		var opts []download.DownloadOption
		if options := interop.Arg(args, 3); options.Type() == js.TypeObject {
			if q := options.Get("quality"); q.Type() == js.TypeNumber {
				opts = append(opts, download.Quality(q.Float()))
			}
			if onProgress := options.Get("onProgress"); onProgress.Type() == js.TypeFunction {
				opts = append(opts, download.OnProgress(func(percent float64) {
					onProgress.Invoke(percent)
				}))
			}
		}
		result := helper.DownloadFile(
			data,
			interop.OptionalString(interop.Arg(args, 1)),
			interop.OptionalString(interop.Arg(args, 2)),
			opts...,
		)
		return resultValue(result), nil
	})

	// encode failures reject, so callers can tell a tainted canvas from a result
	interop.SetPromiseFunc(obj, "canvasToDataURL", func(args []js.Value) (interface{}, error) {
		canvas := interop.Arg(args, 0)
		if !browser.IsCanvas(canvas) {
			return nil, errors.New("canvasToDataURL: expected a canvas element")
		}
		mimeType := interop.OptionalString(interop.Arg(args, 1))
		if mimeType == "" {
			mimeType = "image/png"
		}
		quality := interop.OptionalFloat(interop.Arg(args, 2), helper.Config().Quality)
		return helper.CanvasToDataURL(browser.NewCanvas(canvas), mimeType, quality)
	})

	interop.SetFunc(obj, "getFileExtension", func(args []js.Value) (interface{}, error) {
		return helper.FileExtension(interop.OptionalString(interop.Arg(args, 0))), nil
	})

	interop.SetFunc(obj, "getMimeType", func(args []js.Value) (interface{}, error) {
		return helper.MimeType(interop.OptionalString(interop.Arg(args, 0))), nil
	})

	interop.SetFunc(obj, "cleanFilename", func(args []js.Value) (interface{}, error) {
		return helper.CleanFilename(interop.OptionalString(interop.Arg(args, 0))), nil
	})

	interop.SetFunc(obj, "getErrorSuggestion", func(args []js.Value) (interface{}, error) {
		errValue := interop.Arg(args, 0)
		message := ""
		switch {
		case errValue.Type() == js.TypeString:
			message = errValue.String()
		case interop.Present(errValue):
			message = interop.OptionalString(errValue.Get("message"))
		}
		return helper.ErrorSuggestion(errors.New(message)), nil
	})

	interop.SetFunc(obj, "validateFile", func(args []js.Value) (interface{}, error) {
		maxSizeMB := interop.OptionalFloat(interop.Arg(args, 1), 0)
		return browser.ValidationResult(helper.ValidateFile(browser.File(interop.Arg(args, 0)), maxSizeMB)), nil
	})

	interop.SetFunc(obj, "formatFileSize", func(args []js.Value) (interface{}, error) {
		return helper.FormatFileSize(int64(interop.OptionalFloat(interop.Arg(args, 0), 0))), nil
	})

	interop.SetFunc(obj, "showStatus", func(args []js.Value) (interface{}, error) {
		target := interop.Arg(args, 2)
		if !interop.Present(target) {
			target = js.Global().Get("document").Call("getElementById", "status")
		}
		helper.ShowStatus(
			browser.StatusTarget(target),
			interop.OptionalString(interop.Arg(args, 0)),
			interop.OptionalString(interop.Arg(args, 1)),
		)
		return nil, nil
	})

	interop.SetFunc(obj, "profile", profileFunc(helper))
}

func resultValue(result download.Result) js.Value {
	obj := map[string]interface{}{
		"success": result.Success,
	}
	if result.Success {
		obj["filename"] = result.Filename
	} else {
		obj["error"] = result.Error
		obj["suggestion"] = result.Suggestion
	}
	return js.ValueOf(obj)
}
