//go:build js
// +build js

// Package browser implements host.Host with the DOM.
package browser

import (
	"strings"
	"syscall/js"

	"github.com/avct/uasurfer"
	"github.com/hack-pad/dlhelper/internal/format"
	"github.com/hack-pad/dlhelper/internal/host"
	"github.com/hack-pad/dlhelper/internal/interop"
	"github.com/hack-pad/dlhelper/internal/log"
	"github.com/pkg/errors"
)

var (
	jsBlob      = js.Global().Get("Blob")
	jsDocument  = js.Global().Get("document")
	jsURL       = js.Global().Get("URL")
	jsNavigator = js.Global().Get("navigator")
)

type Host struct {
	document  js.Value
	userAgent *uasurfer.UserAgent
}

var _ host.Host = &Host{}

func New() *Host {
	userAgent := ""
	if jsNavigator.Truthy() {
		userAgent = jsNavigator.Get("userAgent").String()
	}
	return &Host{
		document:  jsDocument,
		userAgent: uasurfer.Parse(userAgent),
	}
}

func (h *Host) CreateDownloadAnchor(href, filename string) (_ host.Anchor, err error) {
	defer interop.CatchException(&err)
	link := h.document.Call("createElement", "a")
	link.Set("href", href)
	link.Set("download", filename)
	link.Get("style").Set("display", "none")
	h.document.Get("body").Call("appendChild", link)
	return &anchor{elem: link}, nil
}

type anchor struct {
	elem js.Value
}

func (a *anchor) Click() (err error) {
	defer interop.CatchException(&err)
	a.elem.Call("click")
	return nil
}

func (a *anchor) Remove() {
	defer interop.CatchExceptionHandler(func(err error) {
		log.Warn("Failed to remove download link: ", err)
	})
	if parent := a.elem.Get("parentNode"); parent.Truthy() {
		parent.Call("removeChild", a.elem)
	}
}

func (h *Host) CreateObjectReference(data []byte, mimeType string) (ref string, err error) {
	defer interop.CatchException(&err)
	blob := jsBlob.New([]interface{}{interop.NewByteArray(data)}, map[string]interface{}{
		"type": mimeType,
	})
	return jsURL.Call("createObjectURL", blob).String(), nil
}

func (h *Host) ReleaseObjectReference(ref string) {
	defer interop.CatchExceptionHandler(func(err error) {
		log.Warn("Failed to revoke object URL: ", err)
	})
	jsURL.Call("revokeObjectURL", ref)
}

func (h *Host) EncodeSurfaceToDataURL(s host.Surface, mimeType string, quality float64) (_ string, err error) {
	canvas, ok := s.(*Canvas)
	if !ok {
		return "", errors.Errorf("Surface %T is not a canvas", s)
	}
	mimeType = format.BaseType(mimeType)
	if !h.canEncode(mimeType) {
		return "", errors.Wrapf(host.ErrUnsupportedFormat, "%s on %s", mimeType, h.userAgent.Browser.Name)
	}

	defer func() {
		err = classifyError(err)
	}()
	defer interop.CatchException(&err)

	var result js.Value
	if format.IsLossy(mimeType) {
		result = canvas.value.Call("toDataURL", mimeType, quality)
	} else {
		result = canvas.value.Call("toDataURL", mimeType)
	}
	dataURL := result.String()
	// browsers encode unknown types as PNG instead of throwing
	if !strings.HasPrefix(dataURL, "data:"+mimeType) {
		return "", errors.Wrap(host.ErrUnsupportedFormat, mimeType)
	}
	return dataURL, nil
}

func (h *Host) canEncode(mimeType string) bool {
	if mimeType == format.MimeWEBP && h.userAgent.Browser.Name == uasurfer.BrowserSafari {
		return false
	}
	return true
}

// classifyError maps JS exceptions thrown by canvas encoding to host errors.
func classifyError(err error) error {
	if err == nil || host.IsFallbackError(err) {
		return err
	}
	switch interop.ErrorName(err) {
	case "SecurityError":
		return errors.Wrap(host.ErrSecurity, err.Error())
	case "NotSupportedError":
		return errors.Wrap(host.ErrUnsupportedFormat, err.Error())
	default:
		return err
	}
}
