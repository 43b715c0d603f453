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

package metrics

import "testing"

func TestObserveReceiveUpdatesSnapshot(t *testing.T) {
	before, beforeMiss, err := Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	ObserveReceive(true)
	ObserveReceive(false)

	after, afterMiss, err := Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if after != before+1 {
		t.Fatalf("receiveHits = %v, want %v", after, before+1)
	}
	if afterMiss != beforeMiss+1 {
		t.Fatalf("receiveMisses = %v, want %v", afterMiss, beforeMiss+1)
	}
}

func TestSetRegisteredPortsDoesNotPanic(t *testing.T) {
	SetRegisteredPorts(3)
}
