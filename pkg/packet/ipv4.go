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

// IPv4Header is the fixed 20-byte IPv4 header (no options). Address
// fields are carried through Aligned32 because received frames may
// only guarantee 16-bit alignment for them.
type IPv4Header struct {
	IHLVersion uint8
	TOS        uint8
	TotalLen   uint16
	ID         uint16
	FragOff    uint16
	TTL        uint8
	Proto      uint8
	Checksum   uint16
	Src        Aligned32
	Dst        Aligned32
}

const IPv4HeaderLen = 20

func init() {
	assertSize("IPv4Header", IPv4HeaderLen, 1+1+2+2+2+1+1+2+4+4)
}

// IP header / TOS constants, per packets.h.
const (
	IPVersion = 4

	IPDontFragment  = 0x4000
	IPMoreFragments = 0x2000
	IPFragOffMask   = 0x1fff

	IPECNNotECT = 0x0
	IPECNECT1   = 0x01
	IPECNECT0   = 0x02
	IPECNCE     = 0x03
	IPECNMask   = 0x03
	IPDSCPMask  = 0xfc
)

// IPIHLVer packs an IHL/version pair into the ip_ihl_ver byte.
func IPIHLVer(ihl, ver uint8) uint8 {
	return ver<<4 | (ihl & 0xf)
}

// IPVer extracts the version nibble.
func IPVer(ihlVer uint8) uint8 { return ihlVer >> 4 }

// IPIHL extracts the IHL nibble.
func IPIHL(ihlVer uint8) uint8 { return ihlVer & 0xf }

// IsFragment reports whether fragOff (network byte order, as stored
// on the wire) indicates a non-initial fragment or more-fragments.
func IsFragment(fragOff uint16) bool {
	return fragOff&(IPMoreFragments|IPFragOffMask) != 0
}

// IsCIDR reports whether netmask (network byte order uint32) consists
// of N high-order 1-bits followed by (32-N) low-order 0-bits.
// Mirrors ip_is_cidr.
func IsCIDR(netmask uint32) bool {
	x := ^netmask
	return x&(x+1) == 0
}

// IsMulticast reports whether ip (network byte order) falls in
// 224.0.0.0/4.
func IsMulticast(ip uint32) bool {
	return ip&0xf0000000 == 0xe0000000
}

// IsLocalMulticast reports whether ip (network byte order) falls in
// 224.0.0.0/24.
func IsLocalMulticast(ip uint32) bool {
	return ip&0xffffff00 == 0xe0000000
}

// Marshal writes h in wire order into buf[0:IPv4HeaderLen].
func (h IPv4Header) Marshal(buf []byte) {
	buf[0] = h.IHLVersion
	buf[1] = h.TOS
	binary.BigEndian.PutUint16(buf[2:4], h.TotalLen)
	binary.BigEndian.PutUint16(buf[4:6], h.ID)
	binary.BigEndian.PutUint16(buf[6:8], h.FragOff)
	buf[8] = h.TTL
	buf[9] = h.Proto
	binary.BigEndian.PutUint16(buf[10:12], h.Checksum)
	copy(buf[12:16], h.Src[:])
	copy(buf[16:20], h.Dst[:])
}
