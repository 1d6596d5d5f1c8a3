//go:build js
// +build js

package browser

import (
	"syscall/js"

	"github.com/hack-pad/dlhelper/internal/display"
)

// Element shows status messages in a DOM element.
type Element struct {
	elem js.Value
}

// StatusTarget wraps value, returning nil when there is no element to write to.
func StatusTarget(value js.Value) display.StatusTarget {
	if !value.Truthy() {
		return nil
	}
	return &Element{elem: value}
}

func (e *Element) SetText(text string) {
	e.elem.Set("textContent", text)
}

func (e *Element) SetClassName(className string) {
	e.elem.Set("className", className)
}
