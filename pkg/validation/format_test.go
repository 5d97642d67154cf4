package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/validation"
)

func TestSniff(t *testing.T) {
	cases := []struct {
		name   string
		data   []byte
		format models.Format
		ok     bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, models.FormatJPEG, true},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0}, models.FormatPNG, true},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8L"), models.FormatWEBP, true},
		{"riff but wave", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), "", false},
		{"webp tag without riff", []byte("XXXX\x00\x00\x00\x00WEBP"), "", false},
		{"truncated png", []byte{0x89, 'P', 'N', 'G'}, "", false},
		{"jpeg two bytes", []byte{0xFF, 0xD8}, "", false},
		{"empty", nil, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			format, ok := validation.Sniff(tc.data)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.format, format)
		})
	}
}

func TestSniffShortRIFFNeverPanics(t *testing.T) {
	full := []byte("RIFF\x01\x02\x03\x04WEBP")
	for n := 0; n < len(full); n++ {
		require.NotPanics(t, func() {
			_, ok := validation.Sniff(full[:n])
			require.False(t, ok)
		})
	}
	_, ok := validation.Sniff(full)
	require.True(t, ok)
}

func TestValidateShortBuffersAreFormatErrors(t *testing.T) {
	v := newTestValidator()
	for n := 1; n <= 12; n++ {
		data := []byte("RIFF\x00\x00\x00\x00WEB")
		if n < len(data) {
			data = data[:n]
		}
		_, err := v.Validate(b64(data))
		requireKind(t, err, validation.KindFormatError)
	}
}
