package ephemeral

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
)

// Sweeper is the part of Store the janitor needs.
type Sweeper interface {
	Name() string
	Sweep(ttl time.Duration) int
}

// Target pairs a store with the TTL it is swept with.
type Target struct {
	Store Sweeper
	TTL   time.Duration
}

// Janitor sweeps its targets on a fixed interval until its context ends.
type Janitor struct {
	interval time.Duration
	targets  []Target
	reg      *metrics.Registry
}

// NewJanitor returns a janitor. reg may be nil.
func NewJanitor(interval time.Duration, reg *metrics.Registry, targets ...Target) *Janitor {
	return &Janitor{interval: interval, targets: targets, reg: reg}
}

// Run blocks, sweeping every interval, and returns nil once ctx is done.
// A failing sweep is logged and does not stop the loop.
func (j *Janitor) Run(ctx context.Context) error {
	logger := log.Ctx(ctx)
	logger.Info().Dur("interval", j.interval).Int("stores", len(j.targets)).Msg("store janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("store janitor stopped")
			return nil
		case <-ticker.C:
			j.SweepOnce(ctx)
		}
	}
}

// SweepOnce sweeps every target once and returns the total removed.
func (j *Janitor) SweepOnce(ctx context.Context) int {
	total := 0
	for _, t := range j.targets {
		n, err := j.sweep(t)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("store", t.Store.Name()).Msg("store sweep failed")
			continue
		}
		total += n
		if n == 0 {
			continue
		}
		log.Ctx(ctx).Info().Str("store", t.Store.Name()).Int("evicted", n).Msg("expired entries evicted")
		j.reg.Inc(ctx, metrics.StoreEntriesEvicted, metrics.Labels{"store": t.Store.Name()}, int64(n))
	}
	return total
}

func (j *Janitor) sweep(t Target) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during sweep: %v", r)
		}
	}()
	return t.Store.Sweep(t.TTL), nil
}
