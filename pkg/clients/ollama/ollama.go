// Package ollama is an inference engine for a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mailru/easyjson"

	"github.com/JohnSili/multimodal-demo/pkg/imagecodec"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2-vision"
)

//easyjson:json
type GenerateOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

//easyjson:json
type GenerateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Images  []string        `json:"images"`
	Stream  bool            `json:"stream"`
	Options GenerateOptions `json:"options"`
}

//easyjson:json
type GenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int64  `json:"prompt_eval_count"`
	EvalCount       int64  `json:"eval_count"`
}

//easyjson:json
type TagsResponse struct {
	Models []Tag `json:"models"`
}

type Tag struct {
	Name string `json:"name"`
}

type Engine struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewEngine(baseURL, model string) *Engine {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}

	return &Engine{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (o *Engine) Name() string { return "ollama" }

// Load checks that the model has been pulled.
func (o *Engine) Load(ctx context.Context) error {
	var tags TagsResponse
	if err := o.do(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return err
	}
	for _, m := range tags.Models {
		if m.Name == o.model || strings.TrimSuffix(m.Name, ":latest") == o.model {
			return nil
		}
	}
	return fmt.Errorf("ollama model %s is not pulled", o.model)
}

func (o *Engine) Complete(ctx context.Context, spec prompting.Spec, img models.Image) (models.Completion, error) {
	request := GenerateRequest{
		Model:  o.model,
		Prompt: spec.Instruction,
		Images: []string{imagecodec.Base64(img.Raw)},
		Stream: false,
		Options: GenerateOptions{
			Temperature: 0,
			NumPredict:  spec.MaxNewTokens,
		},
	}

	jsonData, err := easyjson.Marshal(request)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp GenerateResponse
	if err := o.do(ctx, http.MethodPost, "/api/generate", jsonData, &resp); err != nil {
		return models.Completion{}, err
	}

	return models.Completion{
		Text:             resp.Response,
		Model:            resp.Model,
		FinishReason:     resp.DoneReason,
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
	}, nil
}

func (o *Engine) do(ctx context.Context, method, path string, body []byte, out easyjson.Unmarshaler) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, o.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ollama request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := easyjson.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
