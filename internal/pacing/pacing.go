// Package pacing inserts randomized waits between browser actions. Uniform
// jitter is what keeps the automation from ticking like a clock.
package pacing

import (
	"context"
	"math/rand"
	"time"
)

// SleepFunc suspends the caller for d or until the context is done. Tests
// inject one to record requested durations without real elapsed time.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter produces randomized waits bounded by the run's configured delays.
type Limiter struct {
	min   float64 // seconds
	max   float64
	sleep SleepFunc
}

func New(minSec, maxSec float64) *Limiter {
	return NewWithSleep(minSec, maxSec, nil)
}

// NewWithSleep builds a Limiter with a custom sleep function. A nil sleep
// falls back to a context-aware timer.
func NewWithSleep(minSec, maxSec float64, sleep SleepFunc) *Limiter {
	if maxSec < minSec {
		maxSec = minSec
	}
	if sleep == nil {
		sleep = sleepContext
	}
	return &Limiter{min: minSec, max: maxSec, sleep: sleep}
}

// Wait pauses for a uniform random duration in [min, max] seconds.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.waitRange(ctx, l.min, l.max)
}

// WaitBetween pauses within an explicit bound, for the fixed gaps between
// steps inside one page flow.
func (l *Limiter) WaitBetween(ctx context.Context, minSec, maxSec float64) error {
	return l.waitRange(ctx, minSec, maxSec)
}

// WaitBetweenProfiles pauses in [min+2, max+3] seconds. Consecutive people
// get a longer gap than steps within one profile visit.
func (l *Limiter) WaitBetweenProfiles(ctx context.Context) error {
	return l.waitRange(ctx, l.min+2, l.max+3)
}

func (l *Limiter) waitRange(ctx context.Context, lo, hi float64) error {
	if hi < lo {
		hi = lo
	}
	sec := lo + rand.Float64()*(hi-lo)
	return l.sleep(ctx, time.Duration(sec*float64(time.Second)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
