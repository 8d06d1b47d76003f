/*
 * Copyright 2025 Tripwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package retry implements bounded retries with a doubling delay between
// attempts. The policy is applied explicitly at each call site instead of
// wrapping callables, so the retry behavior of every tool is visible where
// the fallible call is made.
package retry

import (
	"context"
	"time"
)

// Policy describes how a fallible operation is retried. The zero value of
// Retryable retries every error.
type Policy struct {
	// MaxAttempts is the total number of invocations, first try included.
	MaxAttempts int

	// BaseDelay is the sleep before the second attempt; it doubles after
	// every subsequent failure.
	BaseDelay time.Duration

	// Retryable reports whether an error is worth another attempt.
	// Non-retryable errors propagate immediately.
	Retryable func(error) bool
}

// Do invokes fn up to p.MaxAttempts times. The sleep between attempts
// blocks the calling goroutine but is cut short by ctx cancellation, in
// which case the context error is returned.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
		delay *= 2
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
