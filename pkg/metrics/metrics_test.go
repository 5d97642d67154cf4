package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
)

func TestRegistryLabelsAreOrderIndependent(t *testing.T) {
	ctx := context.Background()
	reg := metrics.NewRegistry()

	reg.Inc(ctx, "inference_requests_total", map[string]string{"task": "vqa", "status": "ok"}, 1)
	reg.Inc(ctx, "inference_requests_total", map[string]string{"status": "ok", "task": "vqa"}, 2)
	reg.Inc(ctx, "store_entries_written_total", nil, 5)

	snap := reg.SnapshotJSON()
	require.Equal(t, int64(3), snap["inference_requests_total{status=ok,task=vqa}"])
	require.Equal(t, int64(5), snap["store_entries_written_total"])

	require.Equal(t, []string{
		"inference_requests_total{status=ok,task=vqa} 3",
		"store_entries_written_total 5",
	}, reg.SnapshotLines())
}

func TestRegistryValue(t *testing.T) {
	ctx := context.Background()
	reg := metrics.NewRegistry()

	labels := metrics.Labels{"store": "sessions"}
	reg.Inc(ctx, metrics.StoreBytesWritten, labels, 7)
	reg.Inc(ctx, metrics.StoreBytesWritten, labels, 3)

	require.Equal(t, int64(10), reg.Value(metrics.StoreBytesWritten, labels))
	require.Zero(t, reg.Value(metrics.StoreBytesWritten, metrics.Labels{"store": "ocr_results"}))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var reg *metrics.Registry

	require.NotPanics(t, func() {
		reg.Inc(context.Background(), metrics.HTTPRequests, nil, 1)
	})
	require.Zero(t, reg.Value(metrics.HTTPRequests, nil))
	require.Empty(t, reg.SnapshotLines())
}
