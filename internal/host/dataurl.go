package host

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
)

const dataURLScheme = "data:"

func IsDataURL(s string) bool {
	return len(s) >= len(dataURLScheme) && strings.EqualFold(s[:len(dataURLScheme)], dataURLScheme)
}

// EncodeDataURL returns a base64 data URL holding data.
func EncodeDataURL(mimeType string, data []byte) string {
	mediaType, subType, ok := strings.Cut(mimeType, "/")
	if !ok {
		mediaType, subType = "application", "octet-stream"
	}
	return dataurl.New(data, mediaType+"/"+subType).String()
}

// DecodeDataURL returns the content type and bytes held by a data URL.
func DecodeDataURL(s string) (string, []byte, error) {
	u, err := dataurl.DecodeString(s)
	if err != nil {
		return "", nil, errors.Wrap(err, "Invalid data URL")
	}
	return u.MediaType.ContentType(), u.Data, nil
}
