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

package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBurstThenThrottle(t *testing.T) {
	l := New(time.Hour, 2)
	if !l.Allow() {
		t.Fatalf("first Allow should succeed (burst)")
	}
	if !l.Allow() {
		t.Fatalf("second Allow should succeed (burst)")
	}
	if l.Allow() {
		t.Fatalf("third Allow should be throttled")
	}
}

func TestWarnAndDebugLimitersConstructible(t *testing.T) {
	if NewWarnLimiter() == nil {
		t.Fatalf("NewWarnLimiter returned nil")
	}
	if NewDebugLimiter() == nil {
		t.Fatalf("NewDebugLimiter returned nil")
	}
}
