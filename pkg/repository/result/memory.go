package result

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/repository/ephemeral"
)

const storeName = "ocr_results"

// MemoryRepository is a Repository backed by a fixed-expiry ephemeral store.
type MemoryRepository struct {
	store *ephemeral.Store[string, string]
	reg   *metrics.Registry
}

func NewMemoryRepository(reg *metrics.Registry, opts ...ephemeral.Option) *MemoryRepository {
	return &MemoryRepository{
		store: ephemeral.New[string, string](storeName, ephemeral.Fixed, opts...),
		reg:   reg,
	}
}

// Store exposes the backing store so it can be registered with a janitor.
func (r *MemoryRepository) Store() *ephemeral.Store[string, string] { return r.store }

// Save stores text under a new task id. Empty text is a valid result.
func (r *MemoryRepository) Save(ctx context.Context, text string) (string, error) {
	id := uuid.NewString()
	r.store.Put(id, text)

	log.Ctx(ctx).Info().Str("task_id", id).Int("bytes", len(text)).Msg("ocr result stored")
	labels := metrics.Labels{"store": storeName}
	r.reg.Inc(ctx, metrics.StoreEntriesWritten, labels, 1)
	r.reg.Inc(ctx, metrics.StoreBytesWritten, labels, int64(len(text)))
	return id, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (models.OCRResultEntry, bool) {
	e, ok := r.store.Entry(id)
	if !ok {
		return models.OCRResultEntry{}, false
	}
	return models.OCRResultEntry{ID: id, Text: e.Value, CreatedAt: e.CreatedAt}, true
}

func (r *MemoryRepository) Clear(ctx context.Context) {
	n := r.store.Len()
	r.store.Clear()
	log.Ctx(ctx).Info().Int("results", n).Msg("ocr result store cleared")
}
