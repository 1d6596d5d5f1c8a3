//go:build !js
// +build !js

package log

import (
	"fmt"
	"io"
	"os"
)

var (
	output  io.Writer = os.Stderr
	enabled           = false
)

func publishLevel(consoleType) {}

// SetOutput sends native logs to w. Without it, logs are only written when DEBUG=true.
func SetOutput(w io.Writer) {
	output = w
	enabled = true
}

func writeLog(c consoleType, s string) {
	if enabled || os.Getenv("DEBUG") == "true" {
		fmt.Fprintf(output, "%s: %s\n", c.String(), s)
	}
}
