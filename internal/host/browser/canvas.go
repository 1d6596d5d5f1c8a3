//go:build js
// +build js

package browser

import (
	"image"
	"syscall/js"
)

var jsCanvas = js.Global().Get("HTMLCanvasElement")

// Canvas is a drawable surface backed by an HTML canvas element.
type Canvas struct {
	value js.Value
}

func NewCanvas(value js.Value) *Canvas {
	return &Canvas{value: value}
}

// IsCanvas reports whether value can be wrapped by NewCanvas.
func IsCanvas(value js.Value) bool {
	if value.Type() != js.TypeObject {
		return false
	}
	if jsCanvas.Truthy() && value.InstanceOf(jsCanvas) {
		return true
	}
	return value.Get("toDataURL").Type() == js.TypeFunction
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.value.Get("width").Int(), c.value.Get("height").Int())
}

func (c *Canvas) JSValue() js.Value {
	return c.value
}
