//go:build js
// +build js

package browser

import (
	"syscall/js"

	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/interop"
	"github.com/hack-pad/dlhelper/internal/payload"
	"github.com/hack-pad/dlhelper/internal/promise"
	"github.com/hack-pad/dlhelper/internal/validate"
	"github.com/pkg/errors"
)

var jsString = js.Global().Get("String")

// Payload converts a JS value into download data.
// Blobs are read through their arrayBuffer promise, so Payload must not run on the event loop goroutine.
func Payload(value js.Value) (_ payload.Data, err error) {
	defer interop.CatchException(&err)

	switch {
	case !interop.Present(value), !value.Truthy():
		// "", 0, false and NaN are absent data, not text
		return payload.Data{}, nil
	case value.Type() == js.TypeString:
		s := value.String()
		if host.IsDataURL(s) {
			return payload.DataURL(s), nil
		}
		return payload.Text(s), nil
	case IsCanvas(value):
		return payload.Surface(NewCanvas(value)), nil
	case interop.IsBytes(value):
		return payload.Bytes(interop.BytesFromJS(value)), nil
	case jsBlob.Truthy() && value.InstanceOf(jsBlob):
		buf, err := promise.From(value.Call("arrayBuffer")).Await()
		if err != nil {
			return payload.Data{}, errors.Wrap(err, "Failed to read blob")
		}
		return payload.Blob(interop.BytesFromJS(buf), value.Get("type").String()), nil
	default:
		return payload.Text(jsString.Invoke(value).String()), nil
	}
}

// File converts a JS File-like object. Absent values convert to nil.
func File(value js.Value) *validate.File {
	if !interop.Present(value) || value.Type() != js.TypeObject {
		return nil
	}
	var size int64
	if s := value.Get("size"); s.Type() == js.TypeNumber {
		size = int64(s.Float())
	}
	return &validate.File{
		Name: interop.OptionalString(value.Get("name")),
		Size: size,
		Type: interop.OptionalString(value.Get("type")),
	}
}

func ValidationResult(result validate.Result) js.Value {
	obj := map[string]interface{}{
		"isValid": result.Valid,
		"errors":  interop.SliceFromStrings(result.Errors),
	}
	if result.Info != nil {
		obj["fileInfo"] = map[string]interface{}{
			"name":      result.Info.Name,
			"size":      result.Info.Size,
			"type":      result.Info.Type,
			"extension": result.Info.Extension,
		}
	}
	return js.ValueOf(obj)
}
