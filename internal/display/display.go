package display

import (
	"fmt"

	"github.com/hack-pad/dlhelper/internal/config"
)

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// FileSize formats a byte count as "B", "KB" or "MB" with one decimal for the larger units.
func FileSize(bytes int64) string {
	switch {
	case bytes < kilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < megabyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kilobyte)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/megabyte)
	}
}

// StatusTarget is an element able to show a status message.
type StatusTarget interface {
	SetText(text string)
	SetClassName(className string)
}

// ShowStatus writes message to target with the base class, plus statusType if set. A nil target is ignored.
func ShowStatus(target StatusTarget, baseClass, message, statusType string) {
	if target == nil {
		return
	}
	if baseClass == "" {
		baseClass = config.DefaultStatusClass
	}
	target.SetText(message)
	className := baseClass
	if statusType != "" {
		className += " " + statusType
	}
	target.SetClassName(className)
}
