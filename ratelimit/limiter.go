/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ratelimit implements a fractional token-bucket limiter used to cap
// the rate at which the scheduler initiates new target connections.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a token bucket: tokens accrue at FillRate per second, capped at
// Capacity, and Acquire blocks the caller until one token is available.
type Limiter struct {
	mu sync.Mutex

	fillRate   float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
}

// New builds a limiter with the given fill rate (tokens/second). A fill rate
// below 1 is clamped to 1, matching the reference engine's minimum pace.
func New(fillRate float64) *Limiter {
	if fillRate < 1 {
		fillRate = 1
	}
	return &Limiter{
		fillRate:   fillRate,
		capacity:   fillRate,
		tokens:     fillRate,
		lastRefill: time.Now(),
	}
}

// Acquire suspends until one token is available, then consumes it. It loops
// on wakeup so spurious early returns (and the ctx.Done race) are handled by
// simply re-checking the bucket.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		wait, ok := l.tryAcquire()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			continue
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// tryAcquire refills the bucket and either consumes a token (ok=true) or
// reserves the deficit and reports how long the caller must sleep.
func (l *Limiter) tryAcquire() (wait time.Duration, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if elapsed := now.Sub(l.lastRefill); elapsed > 0 {
		l.tokens += elapsed.Seconds() * l.fillRate
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
		l.lastRefill = now
	}

	if l.tokens >= 1 {
		l.tokens -= 1
		return 0, true
	}

	missing := 1 - l.tokens
	wait = time.Duration(missing / l.fillRate * float64(time.Second))
	l.lastRefill = now
	return wait, false
}
