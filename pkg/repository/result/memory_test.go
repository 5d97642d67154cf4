package result_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/repository/ephemeral"
	"github.com/JohnSili/multimodal-demo/pkg/repository/result"
)

func TestResultsExpireFromCreation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := result.NewMemoryRepository(nil, ephemeral.WithClock(func() time.Time { return now }))

	id, err := repo.Save(ctx, "line one\nline two")
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	got, ok := repo.Get(ctx, id)
	require.True(t, ok)
	require.Equal(t, "line one\nline two", got.Text)
	require.Equal(t, id, got.ID)

	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, repo.Store().Sweep(time.Hour))
	_, ok = repo.Get(ctx, id)
	require.False(t, ok)
}

func TestEmptyTextIsStored(t *testing.T) {
	ctx := context.Background()
	repo := result.NewMemoryRepository(nil)

	id, err := repo.Save(ctx, "")
	require.NoError(t, err)
	got, ok := repo.Get(ctx, id)
	require.True(t, ok)
	require.Empty(t, got.Text)

	repo.Clear(ctx)
	_, ok = repo.Get(ctx, id)
	require.False(t, ok)
}
