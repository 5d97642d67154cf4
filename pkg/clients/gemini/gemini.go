// Package gemini is an inference engine backed by Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

// Load checks the key and that the model exists.
func (e *Engine) Load(ctx context.Context) error {
	cl, err := e.client(ctx)
	if err != nil {
		return err
	}
	defer cl.Close()

	info, err := cl.GenerativeModel(e.Model).Info(ctx)
	if err != nil {
		return fmt.Errorf("gemini: model %s: %w", e.Model, err)
	}
	if !supportsGenerate(info) {
		return fmt.Errorf("gemini: model %s does not support generateContent", e.Model)
	}
	return nil
}

func (e *Engine) Complete(ctx context.Context, spec prompting.Spec, img models.Image) (models.Completion, error) {
	cl, err := e.client(ctx)
	if err != nil {
		return models.Completion{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0),
		MaxOutputTokens: ptrInt32(int32(spec.MaxNewTokens)),
	}
	if sys := systemInstruction(spec); sys != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(sys)}}
	}

	resp, err := m.GenerateContent(ctx,
		&genai.Blob{MIMEType: img.Raw.Format.MIMEType(), Data: img.Raw.Bytes},
		genai.Text(spec.Instruction),
	)
	if err != nil {
		return models.Completion{}, fmt.Errorf("gemini generate: %w", err)
	}

	out := models.Completion{Text: firstText(resp), Model: e.Model}
	if len(resp.Candidates) > 0 {
		out.FinishReason = resp.Candidates[0].FinishReason.String()
	}
	if u := resp.UsageMetadata; u != nil {
		out.PromptTokens = int64(u.PromptTokenCount)
		out.CompletionTokens = int64(u.CandidatesTokenCount)
	}
	return out, nil
}

func (e *Engine) client(ctx context.Context) (*genai.Client, error) {
	if e.APIKey == "" {
		return nil, errors.New("gemini: API key is empty")
	}
	return genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
}

var languageNames = map[string]string{
	"en": "English",
	"ru": "Russian",
}

// systemInstruction carries the OCR language hint. The user instruction is
// left untouched so echo stripping still matches it.
func systemInstruction(spec prompting.Spec) string {
	if spec.Task != prompting.TaskOCR || spec.Language == "" {
		return ""
	}
	name, ok := languageNames[spec.Language]
	if !ok {
		name = spec.Language
	}
	return fmt.Sprintf("The text in the image is expected to be in %s. Transcribe it exactly, keeping line breaks.", name)
}

func supportsGenerate(info *genai.ModelInfo) bool {
	if info == nil || len(info.SupportedGenerationMethods) == 0 {
		return true
	}
	for _, m := range info.SupportedGenerationMethods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

func ptrInt32(v int32) *int32 { return &v }
