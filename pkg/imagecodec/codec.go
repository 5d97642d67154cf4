// Package imagecodec renders validated payloads in the textual forms model
// backends expect. Payloads are passed through as uploaded, never re-encoded.
package imagecodec

import (
	"encoding/base64"

	"github.com/JohnSili/multimodal-demo/pkg/models"
)

// Base64 encodes the raw payload with standard padding.
func Base64(raw models.RawImage) string {
	return base64.StdEncoding.EncodeToString(raw.Bytes)
}

// DataURL renders the raw payload as data:<mime>;base64,<data>.
func DataURL(raw models.RawImage) string {
	return "data:" + raw.Format.MIMEType() + ";base64," + Base64(raw)
}
