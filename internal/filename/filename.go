package filename

import (
	"strings"
)

// MaxLength is the longest stem Clean returns, counted in characters.
const MaxLength = 50

// Clean turns arbitrary text into a safe filename stem.
// The final extension is dropped, anything outside [A-Za-z0-9_-] becomes '_', and the result is cut to MaxLength.
func Clean(name string) string {
	name = stripExtension(name)
	var sb strings.Builder
	count := 0
	for _, r := range name {
		if count == MaxLength {
			break
		}
		if isSafe(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
		count++
	}
	return sb.String()
}

// stripExtension removes a trailing ".suffix" where suffix is non-empty and has no '.' or '/'.
func stripExtension(name string) string {
	ix := strings.LastIndexByte(name, '.')
	if ix == -1 || ix == len(name)-1 {
		return name
	}
	if strings.ContainsRune(name[ix+1:], '/') {
		return name
	}
	return name[:ix]
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z',
		r >= 'A' && r <= 'Z',
		r >= '0' && r <= '9',
		r == '_', r == '-':
		return true
	default:
		return false
	}
}

// Download composes the final download name: the cleaned stem, then suffix, then ".ext".
func Download(name, ext, suffix string) string {
	return Clean(name) + suffix + "." + ext
}
