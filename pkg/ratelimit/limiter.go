/*
 * Copyright (c) 2024 tnlport contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at:
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ratelimit provides token-bucket limiters for gating
// high-frequency, expected-failure log lines (lookup misses, ECN
// drops) so a packet storm cannot flood the log, the same role
// vlog_rate_limit plays in the source this core is ported from. The
// tnlport package itself does not log those outcomes or use these
// limiters; callers that log them do.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket rate.Limiter with the burst semantics
// tnlport's warning/debug logging expects: an initial full bucket so
// the first message after startup always gets through.
type Limiter struct {
	rl *rate.Limiter
}

// New returns a Limiter that refills one token per interval into a
// bucket of size burst, which starts full: up to burst events are
// permitted immediately, then one per interval.
func New(interval time.Duration, burst int) *Limiter {
	return &Limiter{rl: rate.NewLimiter(rate.Every(interval), burst)}
}

// NewWarnLimiter returns the limiter shape spec.md suggests for
// warning-level messages: 1 per 5 seconds.
func NewWarnLimiter() *Limiter {
	return New(5*time.Second, 1)
}

// NewDebugLimiter returns the limiter shape spec.md suggests for
// debug-level messages: 60 per 60 seconds.
func NewDebugLimiter() *Limiter {
	return New(time.Second, 60)
}

// Allow reports whether an event may be logged right now, consuming a
// token if so.
func (l *Limiter) Allow() bool {
	return l.rl.Allow()
}
