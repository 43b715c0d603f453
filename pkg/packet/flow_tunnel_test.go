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

package packet

import "testing"

func TestEffectiveSizeNoDestination(t *testing.T) {
	var t1 FlowTunnel
	if got := t1.EffectiveSize(); got != srcSlotLen {
		t.Fatalf("empty FlowTunnel effective size = %d, want %d", got, srcSlotLen)
	}
}

func TestEffectiveSizeMonotonicity(t *testing.T) {
	full := &FlowTunnel{
		IPDst: 0x0a000001,
		IPSrc: 0x0a000002,
		TunID: 42,
		IPTTL: 64,
	}
	size := full.EffectiveSize()
	if size != effectiveHeaderLen {
		t.Fatalf("size = %d, want %d", size, effectiveHeaderLen)
	}

	// Copying via size and extending with zero bytes should reproduce
	// a bitwise-equal record (Clone truncates to effective size).
	clone := full.Clone()
	if !full.Equal(clone) {
		t.Fatalf("clone of %+v should equal original", full)
	}
}

func TestEffectiveSizeWithMetadata(t *testing.T) {
	md := NewTunnelMetadata(4)
	md.SetOpts([]byte{1, 2, 3, 4})
	md.SetPresent(0)

	ft := &FlowTunnel{IPDst: 0x0a000001, Metadata: md}
	want := effectiveHeaderLen + 4
	if got := ft.EffectiveSize(); got != want {
		t.Fatalf("size = %d, want %d", got, want)
	}
}

func TestEqualityImpliesHashEquality(t *testing.T) {
	a := &FlowTunnel{IPDst: 0x0a000001, IPSrc: 0x0a000002, TunID: 7}
	b := &FlowTunnel{IPDst: 0x0a000001, IPSrc: 0x0a000002, TunID: 7}

	if !a.Equal(b) {
		t.Fatalf("expected a and b to be equal")
	}
	if a.Hash(0) != b.Hash(0) {
		t.Fatalf("equal FlowTunnel values hashed differently: %#x vs %#x", a.Hash(0), b.Hash(0))
	}
}

func TestEqualDistinguishesFieldsInsideEffectiveSize(t *testing.T) {
	a := &FlowTunnel{IPDst: 0x0a000001, IPSrc: 0x0a000002}
	b := &FlowTunnel{IPDst: 0x0a000001, IPSrc: 0x0a000002, GbpID: 0xdead}
	// GbpID differs but both have zero-length metadata, so both fall
	// into the effectiveHeaderLen bucket and must still be considered
	// distinct once the differing byte is within the effective size.
	if a.Equal(b) {
		t.Fatalf("GbpID is within the effective header region and must not be ignored")
	}
}

func TestNoDestinationIgnoresUnrelatedFields(t *testing.T) {
	a := &FlowTunnel{TunID: 1}
	b := &FlowTunnel{TunID: 999999}
	if !a.Equal(b) {
		t.Fatalf("with no destination set, TunID must be outside the effective size")
	}
}
