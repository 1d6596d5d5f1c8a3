//go:build js
// +build js

package main

import (
	"syscall/js"
	"testing"

	"github.com/hack-pad/dlhelper/internal/download"
	"github.com/hack-pad/dlhelper/internal/host/browser"
	"github.com/hack-pad/dlhelper/internal/promise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasToDataURLRejects(t *testing.T) {
	obj := js.Global().Get("Object").New()
	register(obj, download.New(browser.New()))

	for _, arg := range []interface{}{nil, "not a canvas", 42} {
		_, err := promise.From(obj.Call("canvasToDataURL", arg)).Await()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a canvas element")
	}
}

func TestDownloadFileFalsyData(t *testing.T) {
	obj := js.Global().Get("Object").New()
	register(obj, download.New(browser.New()))

	for _, arg := range []interface{}{"", 0, false} {
		result, err := promise.From(obj.Call("downloadFile", arg, "a", "txt")).Await()
		require.NoError(t, err)
		assert.False(t, result.Get("success").Bool())
		assert.Equal(t, "Missing required parameters for download", result.Get("error").String())
	}
}
