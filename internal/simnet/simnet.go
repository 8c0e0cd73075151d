// Package simnet emulates network round-trip latency and random
// failures for write operations against the local record store, so
// callers exercise realistic loading and error-handling paths.
package simnet

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ErrTransient is the injected, retryable failure. The injector never
// retries on the caller's behalf.
var ErrTransient = errors.New("network error: unable to complete the operation, please try again")

// Defaults mirror the envelope contract: uniform delay in
// [200ms, 1200ms], per-call failure probability drawn uniformly
// from [5%, 10%].
const (
	DefaultMinLatency     = 200 * time.Millisecond
	DefaultMaxLatency     = 1200 * time.Millisecond
	DefaultMinFailureRate = 0.05
	DefaultMaxFailureRate = 0.10
)

// Options configures an Injector. Rand and Sleep are injectable so
// tests can force deterministic timing and outcomes.
type Options struct {
	MinLatency     time.Duration
	MaxLatency     time.Duration
	MinFailureRate float64
	MaxFailureRate float64

	// Rand is the randomness source. Defaults to a time-seeded source.
	Rand *rand.Rand

	// Sleep suspends for d, honoring ctx. Defaults to a timer-based
	// sleep. Tests replace it to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Injector applies the write-operation envelope: suspend, maybe fail,
// then run the operation. Reads are not wrapped.
type Injector struct {
	minLatency     time.Duration
	maxLatency     time.Duration
	minFailureRate float64
	maxFailureRate float64
	sleep          func(ctx context.Context, d time.Duration) error

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds an Injector, filling unset options with defaults.
func New(opts Options) (*Injector, error) {
	if opts.MinLatency == 0 && opts.MaxLatency == 0 {
		opts.MinLatency = DefaultMinLatency
		opts.MaxLatency = DefaultMaxLatency
	}
	if opts.MinFailureRate == 0 && opts.MaxFailureRate == 0 {
		opts.MinFailureRate = DefaultMinFailureRate
		opts.MaxFailureRate = DefaultMaxFailureRate
	}
	if opts.MinLatency < 0 || opts.MaxLatency < opts.MinLatency {
		return nil, fmt.Errorf("simnet: invalid latency range [%v, %v]", opts.MinLatency, opts.MaxLatency)
	}
	if opts.MinFailureRate < 0 || opts.MaxFailureRate > 1 || opts.MaxFailureRate < opts.MinFailureRate {
		return nil, fmt.Errorf("simnet: invalid failure rate range [%v, %v]", opts.MinFailureRate, opts.MaxFailureRate)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	return &Injector{
		minLatency:     opts.MinLatency,
		maxLatency:     opts.MaxLatency,
		minFailureRate: opts.MinFailureRate,
		maxFailureRate: opts.MaxFailureRate,
		sleep:          opts.Sleep,
		rng:            opts.Rand,
	}, nil
}

// Disabled returns an Injector with zero latency and zero failure
// probability, for tests and CLI paths that need direct writes.
func Disabled() *Injector {
	return &Injector{
		sleep: func(context.Context, time.Duration) error { return nil },
		rng:   rand.New(rand.NewSource(0)),
	}
}

// Write runs op under the envelope: suspend for a random delay, then
// independently decide whether to fail with ErrTransient instead of
// performing the operation. A context cancelled during the delay
// aborts before the store is touched.
func (in *Injector) Write(ctx context.Context, op func() error) error {
	delay, failed := in.draw()
	if delay > 0 {
		if err := in.sleep(ctx, delay); err != nil {
			return fmt.Errorf("simnet: write aborted: %w", err)
		}
	}
	if failed {
		return ErrTransient
	}
	return op()
}

// draw samples the delay and failure outcome for one call under a
// single lock acquisition; *rand.Rand is not safe for concurrent use.
func (in *Injector) draw() (time.Duration, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	delay := in.minLatency
	if span := in.maxLatency - in.minLatency; span > 0 {
		delay += time.Duration(in.rng.Int63n(int64(span) + 1))
	}

	failed := false
	if in.maxFailureRate > 0 {
		rate := in.minFailureRate + in.rng.Float64()*(in.maxFailureRate-in.minFailureRate)
		failed = in.rng.Float64() < rate
	}
	return delay, failed
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
