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

// Package tools implements the travel tools exposed to the agent:
// flight search, hotel search, destination info and web search. The
// first three generate randomized demo data; web search proxies a real
// search API. All of them share one cache and one retry policy.
package tools

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/search"
	"github.com/tripwise-ai/tripwise/pkg/cache"
	"github.com/tripwise-ai/tripwise/pkg/retry"
)

// ErrServiceUnavailable marks a transient outage of a (simulated)
// backing service. The retry policy absorbs it.
var ErrServiceUnavailable = errors.New("service temporarily unavailable")

// IsRetryable is the retryable-error predicate shared by all tools.
// It covers simulated outages and transient search upstream failures.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, search.ErrUnavailable)
}

// Deps carries everything a tool needs, constructed once in main and
// passed by reference; there is no package-level mutable state.
type Deps struct {
	Cache *cache.ExpiringCache
	Retry retry.Policy

	// Rand, when set, makes the mock generators deterministic.
	// Production leaves it nil and each call seeds its own source.
	Rand *rand.Rand

	// OutageRate is the probability (0..1) that a mock backend call
	// fails with ErrServiceUnavailable before the retry policy runs.
	OutageRate float64
}

func (d *Deps) rng() *rand.Rand {
	if d.Rand != nil {
		return d.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (d *Deps) simulateOutage(r *rand.Rand) error {
	if d.OutageRate > 0 && r.Float64() < d.OutageRate {
		return ErrServiceUnavailable
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^\w\s\-.,?!]`)

// sanitize strips characters outside a conservative allow-list from
// model-supplied string arguments.
func sanitize(s string) string {
	return strings.TrimSpace(unsafeChars.ReplaceAllString(s, ""))
}

func validDate(s string) bool {
	_, err := time.Parse(consts.DateLayout, s)
	return err == nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(consts.DateLayout, s)
}

// marshal renders a tool payload for the model.
func marshal(v any) (string, error) {
	return sonic.MarshalString(v)
}

func choice[T any](r *rand.Rand, options []T) T {
	return options[r.Intn(len(options))]
}

// randBetween returns a uniform int in [lo, hi].
func randBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}
