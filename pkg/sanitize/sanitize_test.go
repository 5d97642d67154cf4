package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/sanitize"
)

func TestEchoAndSentinelStripped(t *testing.T) {
	got := sanitize.Answer("Question: cat. Assistant: It is a cat.", "Question: cat.", "cat")
	require.Equal(t, "It is a cat.", got)
}

func TestEchoFallbackAndNoMatch(t *testing.T) {
	require.Equal(t, "a dog", sanitize.Answer("<|im_start|>User: What is it?\nAssistant: a dog", "TEMPLATE", "What is it?"))
	require.Equal(t, "just text", sanitize.Answer("  just   text ", "nope", "also nope"))
	require.Equal(t, "only first cut", sanitize.Answer("Q only first cut", "Q", ""))
}

func TestEchoUsesFirstOccurrence(t *testing.T) {
	require.Equal(t, "A: Q again", sanitize.Answer("Q A: Q again", "Q", ""))
}

func TestSentinelsRemoved(t *testing.T) {
	raw := "<|im_start|>assistant: <text>Hello</text> world<end_of_utterance><|im_end|>"
	require.Equal(t, "Hello world", sanitize.Answer(raw, "", ""))
}

func TestRepetitionTruncatesToFirstOccurrence(t *testing.T) {
	tokens := []string{"one", "two", "three", "four", "the", "the", "the", "x", "y", "z", "w", "v", "the", "the", "the"}
	require.Len(t, tokens, 15)
	require.Equal(t, "one two three four", sanitize.Answer(strings.Join(tokens, " "), "", ""))
}

func TestRepetitionLongRun(t *testing.T) {
	raw := "The sign says open open open open open open open open open"
	require.Equal(t, "The sign says", sanitize.Answer(raw, "", ""))
}

func TestRepetitionNotTriggered(t *testing.T) {
	// Too short.
	short := "a b c d e f go go go"
	require.Equal(t, short, sanitize.Answer(short, "", ""))

	// Final tokens not identical.
	mixed := "one two three four five six seven eight nine ten eleven a b c"
	require.Equal(t, mixed, sanitize.Answer(mixed, "", ""))

	// Exactly ten tokens does not exceed the minimum.
	ten := "a b c d e f g x x x"
	require.Equal(t, ten, sanitize.Answer(ten, "", ""))
}

func TestRepetitionRunAtIndexZeroKeepsOneWindow(t *testing.T) {
	// Index 0 is never considered, so the earliest cut is index 1.
	raw := strings.TrimSpace(strings.Repeat("la ", 12))
	require.Equal(t, "la", sanitize.Answer(raw, "", ""))
}

func TestOCRPreservesLines(t *testing.T) {
	raw := "Extract all text.\n  Line one  \n\n\tLine two\n   \nLine three"
	require.Equal(t, "Line one\nLine two\nLine three", sanitize.OCRText(raw, "", "Extract all text."))
}

func TestOCRRepetitionKeepsLinesBeforeCut(t *testing.T) {
	raw := "Invoice 42\nTotal: 10 EUR\nThanks for your purchase\n-- -- -- -- -- --"
	require.Equal(t, "Invoice 42\nTotal: 10 EUR\nThanks for your purchase", sanitize.OCRText(raw, "", ""))
}

func TestCleanIsDeterministic(t *testing.T) {
	raw := "Assistant: a b c d e f g h h h h h"
	first := sanitize.Clean(raw, "x", "y", sanitize.Prose)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, sanitize.Clean(raw, "x", "y", sanitize.Prose))
	}
	require.Equal(t, "a b c d e f g", first)
}
