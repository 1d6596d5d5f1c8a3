//go:build js
// +build js

package interop

import "syscall/js"

var jsObject = js.Global().Get("Object")

func SliceFromStrings(strs []string) js.Value {
	values := make([]interface{}, 0, len(strs))
	for _, s := range strs {
		values = append(values, s)
	}
	return js.ValueOf(values)
}

func Keys(value js.Value) []string {
	jsKeys := jsObject.Call("keys", value)
	length := jsKeys.Length()
	var keys []string
	for i := 0; i < length; i++ {
		keys = append(keys, jsKeys.Index(i).String())
	}
	return keys
}

func Entries(value js.Value) map[string]js.Value {
	entries := make(map[string]js.Value)
	if value.Type() != js.TypeObject {
		return entries
	}
	for _, key := range Keys(value) {
		entries[key] = value.Get(key)
	}
	return entries
}

// Arg returns args[i], or undefined if it was not passed.
func Arg(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

// Present reports whether value is neither undefined nor null.
func Present(value js.Value) bool {
	return !value.IsUndefined() && !value.IsNull()
}

// OptionalString returns value as a string, or "" when absent.
func OptionalString(value js.Value) string {
	if value.Type() != js.TypeString {
		return ""
	}
	return value.String()
}

// OptionalFloat returns value as a number, or def when value is not a number.
func OptionalFloat(value js.Value, def float64) float64 {
	if value.Type() != js.TypeNumber {
		return def
	}
	return value.Float()
}
