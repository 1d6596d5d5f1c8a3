//go:build js
// +build js

package interop

import (
	"runtime/debug"
	"strings"
	"syscall/js"

	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/pkg/errors"
)

var jsPromise = js.Global().Get("Promise")

// Func runs synchronously on the JS event loop. It must not block.
type Func = func(args []js.Value) (interface{}, error)

// PromiseFunc runs on its own goroutine. Its JS caller receives a Promise of the result.
type PromiseFunc = func(args []js.Value) (interface{}, error)

// SetFunc registers fn as val[name]. Errors are logged and returned to JS as undefined.
func SetFunc(val js.Value, name string, fn Func) js.Func {
	wrappedFn := js.FuncOf(func(_ js.Value, args []js.Value) (returnedVal interface{}) {
		log.Debug("running op: ", name)
		const unhelpfulStackLines = 7
		defer handlePanic(unhelpfulStackLines)

		ret, err := fn(args)
		if err != nil {
			log.Error(errors.Wrap(err, name).Error())
			return nil
		}
		return ret
	})
	val.Set(name, wrappedFn)
	return wrappedFn
}

// SetPromiseFunc registers fn as val[name], returning a Promise to JS callers.
// Errors reject the promise with a {message, code} object.
func SetPromiseFunc(val js.Value, name string, fn PromiseFunc) js.Func {
	wrappedFn := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		log.Debug("running async op: ", name)
		var resolve, reject js.Value
		prom := jsPromise.New(SingleUseFunc(func(_ js.Value, resolvers []js.Value) interface{} {
			resolve, reject = resolvers[0], resolvers[1]
			return nil
		}))
		go func() {
			var err error
			defer func() {
				if err != nil {
					reject.Invoke(WrapAsJSError(err, name))
				}
			}()
			defer CatchException(&err)
			var ret interface{}
			ret, err = fn(args)
			if err == nil {
				resolve.Invoke(ret)
			}
		}()
		return prom
	})
	val.Set(name, wrappedFn)
	return wrappedFn
}

func handlePanic(skipPanicLines int) {
	r := recover()
	if r == nil {
		return
	}
	stack := string(debug.Stack())
	for iter := 0; iter < skipPanicLines; iter++ {
		ix := strings.IndexRune(stack, '\n')
		if ix == -1 {
			break
		}
		stack = stack[ix+1:]
	}
	switch r := r.(type) {
	case js.Value:
		log.ErrorJSValues(
			js.ValueOf("panic:"),
			r,
			js.ValueOf("\n\n"+stack),
		)
	default:
		log.Errorf("panic: (%T) %+v\n\n%s", r, r, stack)
	}
}
