// Package sanitize cleans raw generative-model output before it is returned
// to callers. Every function here is pure.
package sanitize

import (
	"strings"
	"unicode"
)

// Mode selects the final whitespace normalisation.
type Mode int

const (
	// Prose collapses all whitespace to single spaces.
	Prose Mode = iota
	// Lines keeps one non-empty trimmed line per input line.
	Lines
)

// Repetition collapse thresholds. They were tuned empirically against greedy
// decoding loops and are kept for output compatibility.
var (
	RepetitionWindow    = 3
	RepetitionMinTokens = 10
)

// Removed in order, trimming after each.
var sentinels = []string{
	"Assistant:",
	"assistant:",
	"<text>",
	"</text>",
	"<|im_start|>",
	"<|im_end|>",
	"<end_of_utterance>",
}

// Answer cleans a VQA answer.
func Answer(raw, echoed, fallback string) string {
	return Clean(raw, echoed, fallback, Prose)
}

// OCRText cleans OCR output, preserving line structure.
func OCRText(raw, echoed, fallback string) string {
	return Clean(raw, echoed, fallback, Lines)
}

// Clean strips the echoed prompt, sentinel tokens and a trailing repetition
// loop from raw, then normalises whitespace according to mode.
func Clean(raw, echoed, fallback string, mode Mode) string {
	text := stripEcho(raw, echoed, fallback)
	text = stripSentinels(text)
	text = collapseRepetition(text)
	return normalize(text, mode)
}

func stripEcho(raw, echoed, fallback string) string {
	for _, prompt := range []string{echoed, fallback} {
		if prompt == "" {
			continue
		}
		if _, after, ok := strings.Cut(raw, prompt); ok {
			return strings.TrimSpace(after)
		}
	}
	return raw
}

func stripSentinels(text string) string {
	for _, s := range sentinels {
		text = strings.TrimSpace(strings.ReplaceAll(text, s, ""))
	}
	return text
}

// collapseRepetition drops a degenerate run at the end of text: when the last
// window tokens are identical it cuts at the earliest earlier occurrence of
// that window. Text before the cut is kept byte for byte.
func collapseRepetition(text string) string {
	spans := tokenSpans(text)
	n, w := len(spans), RepetitionWindow
	if n <= w || n <= RepetitionMinTokens {
		return text
	}

	tokens := make([]string, n)
	for i, sp := range spans {
		tokens[i] = text[sp[0]:sp[1]]
	}
	tail := tokens[n-w:]
	for _, tok := range tail[1:] {
		if tok != tail[0] {
			return text
		}
	}

	for i := 1; i <= n-w; i++ {
		if windowEqual(tokens[i:i+w], tail) {
			return text[:spans[i][0]]
		}
	}
	return text
}

func windowEqual(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tokenSpans returns [start, end) byte offsets of whitespace-delimited tokens.
func tokenSpans(text string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(text)})
	}
	return spans
}

func normalize(text string, mode Mode) string {
	if mode == Prose {
		return strings.Join(strings.Fields(text), " ")
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
