// Package metrics keeps in-process counters for the text and JSON endpoints
// and mirrors every increment to OpenTelemetry.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Counter names.
const (
	HTTPRequests        = "http_requests_total"
	HTTPErrors          = "http_requests_errors_total"
	ValidationFailures  = "validation_failures_total"
	InferenceRequests   = "inference_requests_total"
	StoreEntriesWritten = "store_entries_written_total"
	StoreEntriesEvicted = "store_entries_evicted_total"
	StoreBytesWritten   = "store_bytes_written_total"
)

var descriptions = map[string]string{
	HTTPRequests:        "HTTP requests by method, route and status class",
	HTTPErrors:          "HTTP requests answered with a 5xx status",
	ValidationFailures:  "Rejected inputs by error code",
	InferenceRequests:   "Backend calls by task and outcome",
	StoreEntriesWritten: "Entries written to an ephemeral store",
	StoreEntriesEvicted: "Entries removed by expiry sweeps",
	StoreBytesWritten:   "Payload bytes written to an ephemeral store",
}

// Labels are counter dimensions.
type Labels map[string]string

// Registry stores counters for exposition and mirrors them to OTel counters.
// A nil *Registry is valid and records nothing.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64 // key = fullKey(name, labels)
	meter    metric.Meter
	otelCtrs map[string]metric.Int64Counter // base name -> instrument
}

func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*atomic.Int64),
		meter:    otel.GetMeterProvider().Meter("multimodal_demo"),
		otelCtrs: make(map[string]metric.Int64Counter),
	}
}

// fullKey makes deterministic key from name and labels map.
func fullKey(name string, labels Labels) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Inc increases a named counter by n with labels.
func (r *Registry) Inc(ctx context.Context, name string, labels Labels, n int64) {
	if r == nil {
		return
	}
	r.counter(fullKey(name, labels)).Add(n)

	if inst := r.instrument(name); inst != nil {
		attrs := make([]attribute.KeyValue, 0, len(labels))
		for k, v := range labels {
			attrs = append(attrs, attribute.String(k, v))
		}
		inst.Add(ctx, n, metric.WithAttributes(attrs...))
	}
}

// Value returns the current value of one labelled counter.
func (r *Registry) Value(name string, labels Labels) int64 {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c := r.counters[fullKey(name, labels)]; c != nil {
		return c.Load()
	}
	return 0
}

func (r *Registry) counter(key string) *atomic.Int64 {
	r.mu.RLock()
	c := r.counters[key]
	r.mu.RUnlock()
	if c != nil {
		return c
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c = r.counters[key]; c == nil {
		c = new(atomic.Int64)
		r.counters[key] = c
	}
	return c
}

func (r *Registry) instrument(name string) metric.Int64Counter {
	r.mu.RLock()
	inst := r.otelCtrs[name]
	r.mu.RUnlock()
	if inst != nil {
		return inst
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if inst = r.otelCtrs[name]; inst == nil {
		var opts []metric.Int64CounterOption
		if d, ok := descriptions[name]; ok {
			opts = append(opts, metric.WithDescription(d))
		}
		ctr, err := r.meter.Int64Counter(name, opts...)
		if err != nil {
			return nil
		}
		r.otelCtrs[name] = ctr
		inst = ctr
	}
	return inst
}

// SnapshotLines returns sorted "key value" lines.
func (r *Registry) SnapshotLines() []string {
	snap := r.SnapshotJSON()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s %d", k, snap[k]))
	}
	return lines
}

// SnapshotJSON returns a map of counter->value for JSON rendering.
func (r *Registry) SnapshotJSON() map[string]int64 {
	out := make(map[string]int64)
	if r == nil {
		return out
	}
	r.mu.RLock()
	for k, v := range r.counters {
		out[k] = v.Load()
	}
	r.mu.RUnlock()
	return out
}

// EchoHandlerText writes counters in simple text format.
func (r *Registry) EchoHandlerText(c echo.Context) error {
	return c.String(http.StatusOK, strings.Join(r.SnapshotLines(), "\n")+"\n")
}

// EchoHandlerJSON writes counters as JSON.
func (r *Registry) EchoHandlerJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, r.SnapshotJSON())
}
