package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURL = errors.New("not a base64 data URL")

// IsDataURL reports whether s looks like a data URL. It does not validate the payload.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataPrefix)
}

// GetContentType returns the media type of "data:<type>;base64,<payload>", or "" when
// the marker is missing.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URL into its media type and decoded payload.
func Decode(dataURL string) (string, []byte, error) {
	if !IsDataURL(dataURL) {
		return "", nil, ErrNotDataURL
	}

	contentType := GetContentType(dataURL)
	if contentType == "" {
		return "", nil, ErrNotDataURL
	}

	payload := dataURL[strings.Index(dataURL, base64Marker)+len(base64Marker):]

	data, err := stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err //nolint:wrapcheck
	}

	return contentType, data, nil
}

// Extension maps the image media types rooms accept to a file extension.
func Extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
