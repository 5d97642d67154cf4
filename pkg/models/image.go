package models

import "image"

// Format is the container format detected from an image's leading bytes.
type Format string

const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
	FormatWEBP Format = "WEBP"
)

// MIMEType returns the IANA media type for the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWEBP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// RawImage is the validated encoded payload. Bytes must not be mutated after validation.
type RawImage struct {
	Bytes  []byte
	Format Format
}

// DecodedImage holds the decoded pixels. Width and Height never exceed the configured dimension limit.
type DecodedImage struct {
	Width  int
	Height int
	Pixels image.Image
}

// Image pairs a validated payload with its decoded form.
type Image struct {
	Raw     RawImage
	Decoded DecodedImage
}
