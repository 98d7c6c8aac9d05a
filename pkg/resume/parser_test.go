package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLines(t *testing.T) {
	t.Run("corrupt pdf", func(t *testing.T) {
		_, err := ExtractLines("cv.pdf", []byte("%PDF-1.4 this is not a real pdf"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("corrupt docx", func(t *testing.T) {
		_, err := ExtractLines("CV.DOCX", []byte("not a zip archive"))
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("binary with unknown extension", func(t *testing.T) {
		_, err := ExtractLines("photo.xyz", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0x02})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("zip without docx extension", func(t *testing.T) {
		_, err := ExtractLines("cv", []byte("PK\x03\x04rest"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("plain text", func(t *testing.T) {
		lines, err := ExtractLines("cv.txt", []byte("Jane\r\n\r\n\r\n\r\nDoe  Smith\xff"))
		require.NoError(t, err)
		assert.Equal(t, Lines{"Jane", "", "Doe Smith"}, lines)
	})

	t.Run("empty text is not an error", func(t *testing.T) {
		lines, err := ExtractLines("cv.md", nil)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("\n\n  Skills  Go \r\n\tPython\t\n\n\n")
	assert.Equal(t, Lines{"Skills Go", "Python"}, got)
}
