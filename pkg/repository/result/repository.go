// Package result holds OCR output for later download.
package result

import (
	"context"

	"github.com/JohnSili/multimodal-demo/pkg/models"
)

// Repository stores OCR results keyed by task id. Results never change after
// creation and expire a fixed time after it.
type Repository interface {
	Save(ctx context.Context, text string) (string, error)
	Get(ctx context.Context, id string) (models.OCRResultEntry, bool)
	Clear(ctx context.Context)
}
