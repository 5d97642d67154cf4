// Package openai is an inference engine for OpenAI-compatible chat
// completion endpoints that accept image content parts (OpenAI, vLLM, TGI).
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/JohnSili/multimodal-demo/pkg/imagecodec"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

type Client struct {
	client openai.Client
	model  string
}

func isModelInList(model string, models []openai.Model) bool {
	for i := range models {
		if models[i].ID == model {
			return true
		}
	}

	return false
}

// NewClient builds a client without contacting the server; connectivity is
// checked by Load. The SDK's own retries are disabled because failed
// inferences are surfaced, not retried.
func NewClient(key string, url string, model string) *Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}
	if url != "" {
		opts = append(opts, option.WithBaseURL(url))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *Client) Name() string { return "openai" }

// Load tests connectivity by listing models.
func (c *Client) Load(ctx context.Context) error {
	modelList, err := c.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	if !isModelInList(c.model, modelList.Data) {
		return fmt.Errorf("such model does not exists: %s", c.model)
	}

	return nil
}

func (c *Client) makePromptParams(spec prompting.Spec, imageURL string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		MaxTokens:   openai.Int(int64(spec.MaxNewTokens)),
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{OfImageURL: &openai.ChatCompletionContentPartImageParam{
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    imageURL,
									Detail: "auto",
								},
							}},
							{OfText: &openai.ChatCompletionContentPartTextParam{
								Text: spec.Instruction,
							}},
						},
					},
				},
			},
		},
	}
}

// Complete sends the image inline as a data URL.
func (c *Client) Complete(ctx context.Context, spec prompting.Spec, img models.Image) (models.Completion, error) {
	params := c.makePromptParams(spec, imagecodec.DataURL(img.Raw))
	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return models.Completion{}, fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return models.Completion{}, fmt.Errorf("openai returned no choices")
	}

	choice := response.Choices[0]
	return models.Completion{
		Text:             trimMessage(choice.Message.Content),
		Model:            response.Model,
		FinishReason:     choice.FinishReason,
		PromptTokens:     response.Usage.PromptTokens,
		CompletionTokens: response.Usage.CompletionTokens,
	}, nil
}

func trimMessage(message string) string {
	return strings.TrimPrefix(strings.TrimSuffix(message, "\n```"), "```\n")
}
