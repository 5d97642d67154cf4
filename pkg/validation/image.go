package validation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"

	"github.com/JohnSili/multimodal-demo/pkg/models"
)

const (
	DefaultMaxImageSize      = 10 * 1024 * 1024
	DefaultMaxImageDimension = 4096
)

// Limits bounds the accepted payloads.
type Limits struct {
	// MaxImageSize applies to both the encoded text and the decoded bytes.
	MaxImageSize int
	// MaxImageDimension applies to width and height independently.
	MaxImageDimension int
}

// headerDecoders read only the image header. Importing them also registers
// the formats with image.Decode, which imaging.Decode relies on.
var headerDecoders = map[models.Format]func(io.Reader) (image.Config, error){
	models.FormatJPEG: jpeg.DecodeConfig,
	models.FormatPNG:  png.DecodeConfig,
	models.FormatWEBP: webp.DecodeConfig,
}

// Validator turns an untrusted base64 payload into a bounded, decoded image.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	limits   Limits
	encoding *base64.Encoding
}

// NewValidator returns a Validator using strict standard base64. Non-positive
// limits fall back to the defaults.
func NewValidator(limits Limits) *Validator {
	if limits.MaxImageSize <= 0 {
		limits.MaxImageSize = DefaultMaxImageSize
	}
	if limits.MaxImageDimension <= 0 {
		limits.MaxImageDimension = DefaultMaxImageDimension
	}
	return &Validator{
		limits:   limits,
		encoding: base64.StdEncoding.Strict(),
	}
}

// Limits returns the effective limits.
func (v *Validator) Limits() Limits { return v.limits }

// Validate runs the checks in a fixed order; each failure maps to exactly one
// Kind. The returned error is always a *Error.
func (v *Validator) Validate(payload string) (models.Image, error) {
	if strings.TrimSpace(payload) == "" {
		return models.Image{}, newError(KindEmptyImage, "no image provided", nil)
	}

	// data:<mime>;base64,<data>
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	if len(payload) > v.limits.MaxImageSize {
		return models.Image{}, v.sizeError()
	}

	raw, err := v.encoding.DecodeString(payload)
	if err != nil {
		return models.Image{}, newError(KindDecodeError, "invalid base64 string", err)
	}

	if len(raw) > v.limits.MaxImageSize {
		return models.Image{}, v.sizeError()
	}

	format, ok := Sniff(raw)
	if !ok {
		return models.Image{}, newError(KindFormatError, "unsupported image format; allowed: JPEG, PNG, WebP", nil)
	}

	decoded, err := v.decode(raw, format)
	if err != nil {
		return models.Image{}, err
	}

	return models.Image{
		Raw:     models.RawImage{Bytes: raw, Format: format},
		Decoded: decoded,
	}, nil
}

// decode reads the header first so that a tiny payload declaring huge
// dimensions is rejected before any pixel buffer is allocated.
func (v *Validator) decode(raw []byte, format models.Format) (models.DecodedImage, error) {
	cfg, err := headerDecoders[format](bytes.NewReader(raw))
	if err != nil {
		return models.DecodedImage{}, v.imageError(err)
	}
	if err := v.checkDimensions(cfg.Width, cfg.Height); err != nil {
		return models.DecodedImage{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return models.DecodedImage{}, v.imageError(err)
	}
	b := img.Bounds()
	if err := v.checkDimensions(b.Dx(), b.Dy()); err != nil {
		return models.DecodedImage{}, err
	}

	return models.DecodedImage{Width: b.Dx(), Height: b.Dy(), Pixels: img}, nil
}

func (v *Validator) checkDimensions(width, height int) error {
	limit := v.limits.MaxImageDimension
	if width > limit || height > limit {
		return newError(KindDimensionExceeded, fmt.Sprintf(
			"image resolution %dx%d exceeds the maximum of %dx%d pixels", width, height, limit, limit), nil)
	}
	return nil
}

func (v *Validator) sizeError() *Error {
	return newError(KindSizeExceeded, fmt.Sprintf(
		"image size exceeds %.1fMB", float64(v.limits.MaxImageSize)/(1024*1024)), nil)
}

func (v *Validator) imageError(cause error) *Error {
	return newError(KindImageError, fmt.Sprintf("failed to process image: %v", cause), cause)
}
