package image

import (
	"context"

	"github.com/JohnSili/multimodal-demo/pkg/models"
)

// SessionRepository keeps one validated image per session so follow-up
// questions can skip re-uploading it. Entries expire after a period without
// reads.
type SessionRepository interface {
	// Save stores img under a new session id and returns that id.
	Save(ctx context.Context, img models.Image) (string, error)
	// Get returns the session and refreshes its expiry. The boolean indicates presence.
	Get(ctx context.Context, id string) (models.SessionEntry, bool)
	// Delete removes a session before it expires.
	Delete(ctx context.Context, id string) error
	// Clear drops every session.
	Clear(ctx context.Context)
}
