//go:build js
// +build js

package interop

import (
	"syscall/js"

	"github.com/pkg/errors"
)

// CatchException recovers a thrown JS value or Go panic into *err. Use with defer.
func CatchException(err *error) {
	recoverErr := handleRecovery(recover())
	if recoverErr != nil {
		*err = recoverErr
	}
}

func CatchExceptionHandler(fn func(err error)) {
	err := handleRecovery(recover())
	if err != nil {
		fn(err)
	}
}

func handleRecovery(r interface{}) error {
	if r == nil {
		return nil
	}
	switch val := r.(type) {
	case error:
		return val
	case js.Value:
		return js.Error{Value: val}
	default:
		return errors.Errorf("%+v", val)
	}
}

// ErrorName returns the JS error name, like "SecurityError", or "" if err did not come from JS.
func ErrorName(err error) string {
	var jsErr js.Error
	if !errors.As(err, &jsErr) {
		return ""
	}
	name := jsErr.Value.Get("name")
	if name.Type() != js.TypeString {
		return ""
	}
	return name.String()
}
