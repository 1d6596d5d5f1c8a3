//go:build js
// +build js

package global

import "syscall/js"

// Key is the name of the object published on the JS global scope.
const Key = "dlHelper"

var globals js.Value

func init() {
	global := js.Global()
	if !global.Get(Key).Truthy() {
		global.Set(Key, map[string]interface{}{})
	}
	globals = global.Get(Key)
}

func SetDefault(key string, value interface{}) {
	if globals.Get(key).IsUndefined() {
		globals.Set(key, value)
	}
}

func Set(key string, value interface{}) {
	globals.Set(key, value)
}

func Get(key string) js.Value {
	return globals.Get(key)
}

// Object returns the global helper object itself, for registering functions on it.
func Object() js.Value {
	return globals
}
