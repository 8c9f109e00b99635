package base64_test

import (
	"testing"

	"hotel/shared/base64"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: pixelPNG, expected: "image/png"},
		{name: "text", input: "data:text/plain;base64,SGVsbG8gV29ybGQ=", expected: "text/plain"},
		{name: "empty", input: "", expected: ""},
		{name: "no base64 marker", input: "data:image/png,iVBORw0KGgo=", expected: ""},
		{name: "missing semicolon", input: "data:image/pngbase64,iVBORw0KGgo=", expected: ""},
		{name: "only prefix", input: "data:", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
		{name: "parameters kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		contentType, data, err := base64.Decode(pixelPNG)

		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
	})

	t.Run("plain url", func(t *testing.T) {
		_, _, err := base64.Decode("https://cdn.example.com/rooms/101.png")
		assert.ErrorIs(t, err, base64.ErrNotDataURL)
	})

	t.Run("no marker", func(t *testing.T) {
		_, _, err := base64.Decode("data:image/png,abc")
		assert.ErrorIs(t, err, base64.ErrNotDataURL)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		_, _, err := base64.Decode("data:image/png;base64,%%%")
		assert.Error(t, err)
	})
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", base64.Extension("image/png"))
	assert.Equal(t, ".jpg", base64.Extension("image/jpeg"))
	assert.Equal(t, ".jpg", base64.Extension("image/jpg"))
	assert.Equal(t, ".webp", base64.Extension("image/webp"))
	assert.Empty(t, base64.Extension("image/gif"))
}
