//go:build js
// +build js

package interop

import "syscall/js"

var (
	uint8Array  = js.Global().Get("Uint8Array")
	arrayBuffer = js.Global().Get("ArrayBuffer")
)

func NewByteArray(b []byte) js.Value {
	buf := uint8Array.New(len(b))
	js.CopyBytesToJS(buf, b)
	return buf
}

// IsBytes reports whether value is a Uint8Array or an ArrayBuffer.
func IsBytes(value js.Value) bool {
	return value.InstanceOf(uint8Array) || value.InstanceOf(arrayBuffer)
}

// BytesFromJS copies a Uint8Array or ArrayBuffer into Go memory.
func BytesFromJS(value js.Value) []byte {
	if value.InstanceOf(arrayBuffer) {
		value = uint8Array.New(value)
	}
	buf := make([]byte, value.Length())
	js.CopyBytesToGo(buf, value)
	return buf
}
