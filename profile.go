//go:build js
// +build js

package main

import (
	"bytes"
	"runtime"
	"runtime/pprof"
	"syscall/js"

	"github.com/hack-pad/dlhelper/internal/download"
	"github.com/hack-pad/dlhelper/internal/interop"
	"github.com/hack-pad/dlhelper/internal/payload"
	"github.com/pkg/errors"
)

// profileFunc downloads a gzipped heap profile of the running module.
func profileFunc(helper *download.Helper) interop.Func {
	return func(args []js.Value) (interface{}, error) {
		var buf bytes.Buffer
		runtime.GC()
		if err := pprof.WriteHeapProfile(&buf); err != nil {
			return nil, err
		}
		result := helper.DownloadFile(payload.Blob(buf.Bytes(), "application/octet-stream"), "dlhelper-heap", "gz")
		if !result.Success {
			return nil, errors.New(result.Error)
		}
		return result.Filename, nil
	}
}
