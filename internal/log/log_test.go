//go:build !js
// +build !js

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		level  string
		expect consoleType
	}{
		{"debug", LevelDebug},
		{"LOG", LevelLog},
		{"info", LevelLog},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"verbose", -1},
	} {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expect, ParseLevel(tc.level))
			assert.Equal(t, tc.expect != -1, ParseLevel(tc.level).Valid())
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prevOutput, prevEnabled, prevLevel := output, enabled, logLevel
	defer func() {
		output, enabled, logLevel = prevOutput, prevEnabled, prevLevel
	}()
	SetOutput(&buf)

	SetLevel(LevelWarn)
	assert.Zero(t, Debug("hidden"))
	assert.Zero(t, Printf("hidden %d", 1))
	assert.NotZero(t, Warnf("shown %d", 2))
	assert.NotZero(t, Error("also shown"))

	SetLevel(-1)
	assert.Equal(t, LevelWarn, Level())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[0], "warn: "), lines[0])
		assert.Contains(t, lines[0], "log_test.go:")
		assert.True(t, strings.HasSuffix(lines[0], "TestLevelFiltering() - shown 2"), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "error: "), lines[1])
	}
}
