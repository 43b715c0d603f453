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

// GREHeader is the fixed 4-byte GRE base header; the optional
// checksum/key/sequence words that follow are variable-length and are
// not modeled here.
type GREHeader struct {
	Flags    uint16
	Protocol uint16
}

const GREHeaderLen = 4

func init() { assertSize("GREHeader", GREHeaderLen, 2+2) }

// GRE header flag bits, per packets.h.
const (
	GREFlagCSUM = 0x8000
	GREFlagKey  = 0x2000
	GREFlagSeq  = 0x1000
	GREVersionMask = 0x0007
)

// VXLANHeader is the fixed 8-byte VXLAN header.
type VXLANHeader struct {
	Flags Aligned32
	VNI   Aligned32
}

const VXLANHeaderLen = 8

func init() { assertSize("VXLANHeader", VXLANHeaderLen, 4+4) }

// VXLANFlagsI is the only flag bit VXLAN defines (the "I" VNI-valid
// bit); a conforming header must read back with exactly this bit set
// in the flags word's network-order first byte, i.e. Flags.Get() ==
// VXLANFlagsI after Put.
const VXLANFlagsI = 0x08000000

// MakeVXLANHeader builds a VXLAN header carrying vni in its upper 24
// bits, mirroring the wire layout produced by vxlan_vni/PutVNI.
func MakeVXLANHeader(vni uint32) VXLANHeader {
	var h VXLANHeader
	h.Flags.Put(VXLANFlagsI)
	h.VNI.Put(vni << 8)
	return h
}

// VNI32 extracts the 24-bit VXLAN network identifier from the VNI word.
func (h VXLANHeader) VNI32() uint32 {
	return h.VNI.Get() >> 8
}

// HasVNI reports whether the flags word is exactly VXLANFlagsI: the
// "I" bit set (the VNI field carries a valid identifier) and every
// reserved bit clear. A header with any reserved bit set reports false.
func (h VXLANHeader) HasVNI() bool {
	return h.Flags.Get() == VXLANFlagsI
}
