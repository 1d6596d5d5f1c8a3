//go:build js
// +build js

// Package promise waits on JS promises from Go.
package promise

import (
	"syscall/js"
)

type JS struct {
	value js.Value
}

func From(promiseValue js.Value) JS {
	return JS{value: promiseValue}
}

// Await blocks until the promise settles. It must not be called from the JS event loop goroutine.
func (p JS) Await() (js.Value, error) {
	type settled struct {
		value js.Value
		err   error
	}
	done := make(chan settled, 1)
	onResolve := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		done <- settled{value: firstArg(args)}
		return nil
	})
	onReject := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		done <- settled{err: js.Error{Value: firstArg(args)}}
		return nil
	})
	defer onResolve.Release()
	defer onReject.Release()

	p.value.Call("then", onResolve, onReject)
	result := <-done
	if result.err != nil {
		return js.Null(), result.err
	}
	return result.value, nil
}

func (p JS) JSValue() js.Value {
	return p.value
}

func firstArg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}
