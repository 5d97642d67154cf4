package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Languages validates OCR language codes against a fixed allow-set.
type Languages struct {
	allowed  []string
	fallback string
}

// NewLanguages returns a validator for the allowed codes. fallback is used when
// no code is supplied and must itself be allowed.
func NewLanguages(allowed []string, fallback string) (*Languages, error) {
	if !slices.Contains(allowed, fallback) {
		return nil, fmt.Errorf("default language %q is not in %v", fallback, allowed)
	}
	return &Languages{allowed: slices.Clone(allowed), fallback: fallback}, nil
}

// Allowed returns a copy of the allow-set.
func (l *Languages) Allowed() []string { return slices.Clone(l.allowed) }

// Validate returns the default for a missing or blank code and the code itself
// when allowed. Anything else is a KindLanguageError.
func (l *Languages) Validate(code *string) (string, error) {
	if code == nil || strings.TrimSpace(*code) == "" {
		return l.fallback, nil
	}
	if !slices.Contains(l.allowed, *code) {
		return "", newError(KindLanguageError, fmt.Sprintf(
			"unsupported language %q; available: %s", *code, strings.Join(l.allowed, ", ")), nil)
	}
	return *code, nil
}

// SessionID normalises an optional session identifier. Blank means absent.
func SessionID(id *string) (string, bool) {
	if id == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*id)
	return trimmed, trimmed != ""
}
