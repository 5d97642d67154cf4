package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/validation"
)

func ptr(s string) *string { return &s }

func TestLanguages(t *testing.T) {
	langs, err := validation.NewLanguages([]string{"en", "ru"}, "en")
	require.NoError(t, err)

	got, err := langs.Validate(nil)
	require.NoError(t, err)
	require.Equal(t, "en", got)

	got, err = langs.Validate(ptr("  "))
	require.NoError(t, err)
	require.Equal(t, "en", got)

	got, err = langs.Validate(ptr("ru"))
	require.NoError(t, err)
	require.Equal(t, "ru", got)

	_, err = langs.Validate(ptr("fr"))
	verr := requireKind(t, err, validation.KindLanguageError)
	require.Equal(t, "INVALID_LANGUAGE", verr.Family)
	require.Equal(t, "LANGUAGE_ERROR", verr.Code)
	require.Contains(t, verr.Message, "en, ru")
}

func TestNewLanguagesRejectsUnknownDefault(t *testing.T) {
	_, err := validation.NewLanguages([]string{"en"}, "de")
	require.Error(t, err)
}

func TestSessionID(t *testing.T) {
	_, ok := validation.SessionID(nil)
	require.False(t, ok)

	_, ok = validation.SessionID(ptr("   "))
	require.False(t, ok)

	id, ok := validation.SessionID(ptr("  test-session-123  "))
	require.True(t, ok)
	require.Equal(t, "test-session-123", id)
}
