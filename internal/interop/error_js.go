//go:build js
// +build js

package interop

import (
	"syscall/js"

	"github.com/pkg/errors"
)

func WrapAsJSError(err error, message string) js.Value {
	if err == nil {
		return js.Null()
	}
	code := ErrorName(err)
	if code == "" {
		code = "Error"
	}
	return js.ValueOf(map[string]interface{}{
		"message": errors.Wrap(err, message).Error(),
		"code":    code,
	})
}
