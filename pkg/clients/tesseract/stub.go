//go:build !tesseract

package tesseract

import (
	"context"
	"errors"

	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

var errNotBuilt = errors.New("binary built without tesseract support; rebuild with -tags tesseract")

type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) Load(context.Context) error { return errNotBuilt }

func (e *Engine) Complete(_ context.Context, spec prompting.Spec, _ models.Image) (models.Completion, error) {
	if spec.Task != prompting.TaskOCR {
		return models.Completion{}, ErrUnsupportedTask
	}
	return models.Completion{}, errNotBuilt
}
