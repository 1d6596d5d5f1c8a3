//go:build !js
// +build !js

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.wasm"), []byte("\x00asm"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0600))
	h := handler(dir)

	for _, tc := range []struct {
		path        string
		status      int
		contentType string
	}{
		{"/main.wasm", http.StatusOK, "application/wasm"},
		{"/index.html", http.StatusOK, "text/html; charset=utf-8"},
		{"/missing.js", http.StatusNotFound, ""},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
			if tc.contentType != "" {
				assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
			}
		})
	}
}
