// Package suggest maps failures to short hints a user can act on.
//
// Classification matches substrings of the lower-cased error text, so it is a
// best-effort heuristic: an unrelated message mentioning "format" still gets the format hint.
// Only the innermost error is read. Wrapping context, which may hold file names, is not.
package suggest

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	SecurityHint = "The image may come from another website. Try saving it to your device and uploading it directly."
	FormatHint   = "This format may not be supported by your browser. Try a different output format."
	SizeHint     = "The file may be too large. Try a smaller file or a lower quality setting."
	GenericHint  = "Please try again. If the problem continues, try a different file or format."
)

type rule struct {
	keywords []string
	hint     string
}

// first match wins
var rules = []rule{
	{[]string{"security", "cross-origin"}, SecurityHint},
	{[]string{"supported", "format"}, FormatHint},
	{[]string{"size", "large"}, SizeHint},
}

func For(err error) string {
	if err == nil {
		return GenericHint
	}
	return ForMessage(rootCause(err).Error())
}

func rootCause(err error) error {
	for {
		err = errors.Cause(err)
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func ForMessage(message string) string {
	message = strings.ToLower(message)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(message, keyword) {
				return r.hint
			}
		}
	}
	return GenericHint
}
