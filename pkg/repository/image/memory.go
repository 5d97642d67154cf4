package image

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/repository/ephemeral"
)

const storeName = "sessions"

// MemoryRepository is an in-memory SessionRepository backed by a sliding
// ephemeral store. Eviction is left to the store's janitor.
type MemoryRepository struct {
	store *ephemeral.Store[string, models.Image]
	reg   *metrics.Registry
}

// NewMemoryRepository creates an empty repository. reg may be nil.
func NewMemoryRepository(reg *metrics.Registry, opts ...ephemeral.Option) *MemoryRepository {
	return &MemoryRepository{
		store: ephemeral.New[string, models.Image](storeName, ephemeral.Sliding, opts...),
		reg:   reg,
	}
}

// Store exposes the backing store so it can be registered with a janitor.
func (r *MemoryRepository) Store() *ephemeral.Store[string, models.Image] { return r.store }

// Save stores a copy of the image bytes under a new UUID.
func (r *MemoryRepository) Save(ctx context.Context, img models.Image) (string, error) {
	if len(img.Raw.Bytes) == 0 {
		return "", errors.New("empty image data")
	}

	id := uuid.NewString()

	// Make a copy of the data to avoid external modifications.
	img.Raw.Bytes = cloneBytes(img.Raw.Bytes)
	r.store.Put(id, img)

	log.Ctx(ctx).Info().
		Str("session_id", id).
		Str("format", string(img.Raw.Format)).
		Int("bytes", len(img.Raw.Bytes)).
		Msg("session image stored")
	labels := metrics.Labels{"store": storeName}
	r.reg.Inc(ctx, metrics.StoreEntriesWritten, labels, 1)
	r.reg.Inc(ctx, metrics.StoreBytesWritten, labels, int64(len(img.Raw.Bytes)))

	return id, nil
}

// Get returns the session with a private copy of the raw bytes. Decoded
// pixels are shared and must be treated as read-only.
func (r *MemoryRepository) Get(ctx context.Context, id string) (models.SessionEntry, bool) {
	e, ok := r.store.Entry(id)
	if !ok {
		return models.SessionEntry{}, false
	}
	img := e.Value
	img.Raw.Bytes = cloneBytes(img.Raw.Bytes)

	log.Ctx(ctx).Debug().Str("session_id", id).Msg("session image reused")
	return models.SessionEntry{
		ID:             id,
		Image:          img,
		CreatedAt:      e.CreatedAt,
		LastAccessedAt: e.LastAccessedAt,
	}, true
}

// Delete removes the session.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if r.store.Delete(id) {
		log.Ctx(ctx).Info().Str("session_id", id).Msg("session image freed")
	}
	return nil
}

// Clear drops all sessions.
func (r *MemoryRepository) Clear(ctx context.Context) {
	n := r.store.Len()
	r.store.Clear()
	log.Ctx(ctx).Info().Int("sessions", n).Msg("session store cleared")
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
