// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Func defines a retryable function. It must respect ctx.
type Func func(ctx context.Context) error

// RetryIf reports whether err should trigger another attempt.
type RetryIf func(error) bool

// Backoff returns the wait before the next attempt; attempt starts at 0.
type Backoff interface {
	Next(attempt int) time.Duration
}

type fixedBackoff struct {
	interval time.Duration
}

func (b fixedBackoff) Next(int) time.Duration {
	return b.interval
}

// Fixed waits the same interval between attempts.
func Fixed(interval time.Duration) Backoff {
	return fixedBackoff{interval: interval}
}

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

func (b exponentialBackoff) Next(attempt int) time.Duration {
	d := b.base * time.Duration(1<<attempt)
	if b.max > 0 && d > b.max {
		return b.max
	}
	return d
}

// Exponential doubles the wait on each attempt, capped at max when given.
func Exponential(base time.Duration, max ...time.Duration) Backoff {
	var m time.Duration
	if len(max) > 0 {
		m = max[0]
	}
	return exponentialBackoff{base: base, max: m}
}

// Jitter modifies a backoff duration.
type Jitter func(time.Duration) time.Duration

// NoJitter applies no jitter.
func NoJitter(d time.Duration) time.Duration {
	return d
}

// FullJitter picks a random duration in [0, d).
func FullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(d)))
}

type config struct {
	maxAttempts int
	backoff     Backoff
	jitter      Jitter
	retryIf     RetryIf
	onRetry     func(attempt int, err error)
}

func defaultConfig() *config {
	return &config{
		maxAttempts: 3,
		backoff:     Fixed(200 * time.Millisecond),
		jitter:      NoJitter,
		retryIf:     IsRetryableError,
	}
}

// Option configures retry behavior.
type Option func(*config)

// WithMaxAttempts sets the number of attempts, the first one included.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the backoff strategy.
func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithJitter sets the jitter strategy.
func WithJitter(j Jitter) Option {
	return func(c *config) {
		if j != nil {
			c.jitter = j
		}
	}
}

// WithRetryIf sets the retry condition.
func WithRetryIf(fn RetryIf) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// WithOnRetry registers a hook called before each retry.
func WithOnRetry(fn func(attempt int, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// Do executes fn until it succeeds, the attempts run out, the retry
// condition rejects the error or ctx is done.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !cfg.retryIf(err) || attempt == cfg.maxAttempts-1 {
			break
		}
		if cfg.onRetry != nil {
			cfg.onRetry(attempt+1, err)
		}

		wait := cfg.jitter(cfg.backoff.Next(attempt))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}

// IsRetryableError retries everything except context cancellation and deadline.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
