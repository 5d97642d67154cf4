// Package tesseract is an OCR-only inference engine backed by the Tesseract
// library. The real engine needs cgo and is compiled with the tesseract build
// tag; without it New returns an engine that never loads.
package tesseract

import "errors"

// ErrUnsupportedTask is returned for anything but OCR.
var ErrUnsupportedTask = errors.New("tesseract only supports text extraction")

var languages = map[string]string{
	"en": "eng",
	"ru": "rus",
}

// Language maps an ISO 639-1 code to Tesseract's traineddata name. Unknown
// codes are passed through; an empty code means English.
func Language(code string) string {
	if code == "" {
		return "eng"
	}
	if l, ok := languages[code]; ok {
		return l
	}
	return code
}
