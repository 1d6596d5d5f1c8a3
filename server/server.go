//go:build !js
// +build !js

// Command server serves the wasm build and its demo page for local testing.
package main

import (
	"flag"
	"net/http"
	"os"
	"path"

	"github.com/hack-pad/dlhelper/internal/log"
)

func main() {
	dir := flag.String("dir", "./out", "Directory to serve")
	addr := flag.String("addr", ":8080", "Address to listen on")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.Print("Serving ", *dir, " on http://localhost", *addr)
	if err := http.ListenAndServe(*addr, handler(*dir)); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func handler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		resp.Header().Add("Cache-Control", "no-cache")
		if path.Ext(req.URL.Path) == ".wasm" {
			// streaming compilation requires the exact type
			resp.Header().Set("Content-Type", "application/wasm")
		}
		fs.ServeHTTP(resp, req)
	})
}
