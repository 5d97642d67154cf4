// Package prompting builds the prompts sent to vision-language backends.
package prompting

import (
	"fmt"
	"strings"
)

// Task identifies the kind of request a prompt was built for.
type Task string

const (
	TaskVQA Task = "vqa"
	TaskOCR Task = "ocr"
)

const (
	// DefaultQuestion is asked when the caller supplies no question.
	DefaultQuestion = "Describe this image in detail."
	// OCRInstruction is the fixed text-extraction instruction.
	OCRInstruction = "Extract all text from this image. Return only the text, no additional description."

	DefaultMaxNewTokens = 512
)

// Spec is everything a backend needs besides the image.
type Spec struct {
	Task Task
	// Instruction is the bare user text.
	Instruction string
	// Rendered is Instruction wrapped in the chat template. Models that echo
	// their input repeat this verbatim.
	Rendered string
	// Language is an ISO 639-1 hint for OCR; empty for VQA.
	Language     string
	MaxNewTokens int
}

// VQA returns the prompt for a question about an image. A blank question
// becomes DefaultQuestion.
func VQA(question string) Spec {
	if strings.TrimSpace(question) == "" {
		question = DefaultQuestion
	}
	return Spec{
		Task:         TaskVQA,
		Instruction:  question,
		Rendered:     Render(question),
		MaxNewTokens: DefaultMaxNewTokens,
	}
}

// OCR returns the text-extraction prompt. The instruction does not depend on
// language.
func OCR(language string) Spec {
	return Spec{
		Task:         TaskOCR,
		Instruction:  OCRInstruction,
		Rendered:     Render(OCRInstruction),
		Language:     language,
		MaxNewTokens: DefaultMaxNewTokens,
	}
}

// Render applies the single-turn image chat template with the generation
// prompt appended.
func Render(instruction string) string {
	return fmt.Sprintf("<|im_start|>User:<image>%s<end_of_utterance>\nAssistant:", instruction)
}
