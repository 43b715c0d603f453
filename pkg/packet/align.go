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

import "encoding/binary"

// Aligned32 is a 32-bit, network-byte-order field that is only
// guaranteed to be 16-bit aligned inside a received frame, mirroring
// OVS's "ovs_16aligned_be32": two big-endian half-words, read and
// written through accessors that never require 4-byte alignment.
type Aligned32 [4]byte

// Get synthesizes the 32-bit value from the two half-words.
func (a Aligned32) Get() uint32 {
	return binary.BigEndian.Uint32(a[:])
}

// Put stores v as two half-words.
func (a *Aligned32) Put(v uint32) {
	binary.BigEndian.PutUint32(a[:], v)
}

// Aligned128 is a 16-byte, 16-bit-aligned container for an IPv6
// address, mirroring "union ovs_16aligned_in6_addr": it requires only
// 16-bit alignment, unlike the platform's native 16-byte in6_addr.
type Aligned128 [16]byte

// Get returns the contained address as a 16-byte IPv6 address.
func (a Aligned128) Get() IPv6Addr {
	var v IPv6Addr
	copy(v[:], a[:])
	return v
}

// Put stores an IPv6 address.
func (a *Aligned128) Put(v IPv6Addr) {
	copy(a[:], v[:])
}

// Word returns the i'th 32-bit word (0-3) of the address.
func (a Aligned128) Word(i int) uint32 {
	return binary.BigEndian.Uint32(a[i*4 : i*4+4])
}

// PutWord sets the i'th 32-bit word (0-3) of the address.
func (a *Aligned128) PutWord(i int, v uint32) {
	binary.BigEndian.PutUint32(a[i*4:i*4+4], v)
}
