package validation

import "fmt"

// Kind enumerates the distinct ways a caller-supplied input can be rejected.
type Kind int

const (
	KindEmptyImage Kind = iota + 1
	KindSizeExceeded
	KindDecodeError
	KindFormatError
	KindImageError
	KindDimensionExceeded
	KindLanguageError
)

func (k Kind) String() string {
	switch k {
	case KindEmptyImage:
		return "EmptyImage"
	case KindSizeExceeded:
		return "SizeExceeded"
	case KindDecodeError:
		return "DecodeError"
	case KindFormatError:
		return "FormatError"
	case KindImageError:
		return "ImageError"
	case KindDimensionExceeded:
		return "DimensionExceeded"
	case KindLanguageError:
		return "LanguageError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// family and code are the machine-readable identifiers reported to API clients.
func (k Kind) family() string {
	switch k {
	case KindEmptyImage, KindImageError:
		return "INVALID_IMAGE"
	case KindSizeExceeded, KindDimensionExceeded:
		return "IMAGE_TOO_LARGE"
	case KindDecodeError:
		return "INVALID_BASE64"
	case KindFormatError:
		return "INVALID_FORMAT"
	case KindLanguageError:
		return "INVALID_LANGUAGE"
	default:
		return "INVALID_INPUT"
	}
}

func (k Kind) code() string {
	switch k {
	case KindEmptyImage:
		return "EMPTY_IMAGE"
	case KindSizeExceeded:
		return "SIZE_EXCEEDED"
	case KindDecodeError:
		return "DECODE_ERROR"
	case KindFormatError:
		return "FORMAT_ERROR"
	case KindImageError:
		return "IMAGE_ERROR"
	case KindDimensionExceeded:
		return "DIMENSION_EXCEEDED"
	case KindLanguageError:
		return "LANGUAGE_ERROR"
	default:
		return "INVALID_INPUT"
	}
}

// Error is a caller input defect. It is never worth retrying.
type Error struct {
	Kind    Kind
	Family  string
	Code    string
	Message string
	// Err is the underlying cause, if any (e.g. the image decoder failure).
	Err error
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Family:  kind.family(),
		Code:    kind.code(),
		Message: message,
		Err:     cause,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }
