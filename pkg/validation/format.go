package validation

import (
	"bytes"

	"github.com/JohnSili/multimodal-demo/pkg/models"
)

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffMagic = []byte("RIFF")
	webpMagic = []byte("WEBP")
)

// Sniff classifies b by its leading bytes. Only the prefix is inspected, so a
// buffer with a valid signature and garbage after it is still classified.
func Sniff(b []byte) (models.Format, bool) {
	switch {
	case bytes.HasPrefix(b, jpegMagic):
		return models.FormatJPEG, true
	case bytes.HasPrefix(b, pngMagic):
		return models.FormatPNG, true
	case len(b) >= 12 && bytes.Equal(b[0:4], riffMagic) && bytes.Equal(b[8:12], webpMagic):
		return models.FormatWEBP, true
	default:
		return "", false
	}
}
