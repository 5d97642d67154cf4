//go:build tesseract

package tesseract

import (
	"context"
	"errors"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

// Engine runs local Tesseract OCR. It cannot answer questions.
type Engine struct {
	clientFactory func() *gosseract.Client
}

func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Load checks that the library and its language data are usable.
func (e *Engine) Load(ctx context.Context) error {
	c := e.clientFactory()
	defer c.Close()
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("tesseract: list languages: %w", err)
	}
	if len(langs) == 0 {
		return errors.New("tesseract: no language data installed")
	}
	return nil
}

func (e *Engine) Complete(ctx context.Context, spec prompting.Spec, img models.Image) (models.Completion, error) {
	if spec.Task != prompting.TaskOCR {
		return models.Completion{}, ErrUnsupportedTask
	}
	select {
	case <-ctx.Done():
		return models.Completion{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(Language(spec.Language)); err != nil {
		return models.Completion{}, fmt.Errorf("tesseract: set language: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return models.Completion{}, fmt.Errorf("tesseract: set page mode: %w", err)
	}
	if err := c.SetImageFromBytes(img.Raw.Bytes); err != nil {
		return models.Completion{}, fmt.Errorf("tesseract: set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return models.Completion{}, fmt.Errorf("tesseract: recognize: %w", err)
	}
	return models.Completion{Text: text, Model: "tesseract", FinishReason: "stop"}, nil
}
