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

// IPv6Addr is a 16-byte IPv6 address in network byte order, matching
// "struct in6_addr".
type IPv6Addr [16]byte

var (
	// ExactMaskIPv6 is the all-ones mask, mirroring in6addr_exact.
	ExactMaskIPv6 = IPv6Addr{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	// AllHostsIPv6 is ff02::1, mirroring in6addr_all_hosts.
	AllHostsIPv6 = IPv6Addr{0xff, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
)

// IsSet reports whether addr is non-zero, mirroring
// ipv6_addr_is_set.
func (addr IPv6Addr) IsSet() bool {
	return addr != IPv6Addr{}
}

// IsMulticast reports whether the first byte is 0xff, mirroring
// ipv6_addr_is_multicast.
func (addr IPv6Addr) IsMulticast() bool {
	return addr[0] == 0xff
}

// IsAllHosts reports whether addr equals ff02::1.
func (addr IPv6Addr) IsAllHosts() bool {
	return addr == AllHostsIPv6
}

// v4MappedPrefix is the ::ffff:0:0/96 prefix used to carry an IPv4
// address inside an IPv6 container.
var v4MappedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// SetMappedIPv4 stores ip4 (network byte order) as an IPv4-mapped
// IPv6 address, mirroring in6_addr_set_mapped_ipv4.
func (addr *IPv6Addr) SetMappedIPv4(ip4 uint32) {
	copy(addr[0:12], v4MappedPrefix[:])
	binary.BigEndian.PutUint32(addr[12:16], ip4)
}

// MappedIPv4 returns the embedded IPv4 address (network byte order)
// if addr is an IPv4-mapped IPv6 address, or 0 and false otherwise.
// Mirrors in6_addr_get_mapped_ipv4.
func (addr IPv6Addr) MappedIPv4() (uint32, bool) {
	for i := 0; i < 10; i++ {
		if addr[i] != 0 {
			return 0, false
		}
	}
	if addr[10] != 0xff || addr[11] != 0xff {
		return 0, false
	}
	return binary.BigEndian.Uint32(addr[12:16]), true
}

// AddrFromV4OrV6 returns v4 encoded as an IPv4-mapped IPv6 address
// when v4 is non-zero, otherwise v6 unchanged. This is how the
// tunnel-port match tuple represents "either family, one field": a
// non-zero IPv4 slot always wins.
func AddrFromV4OrV6(v4 uint32, v6 IPv6Addr) IPv6Addr {
	if v4 != 0 {
		var addr IPv6Addr
		addr.SetMappedIPv4(v4)
		return addr
	}
	return v6
}

// IPv6FixedHeader is the fixed 40-byte IPv6 header.
type IPv6FixedHeader struct {
	VersionTCFlow uint32 // version(4)/traffic class(8)/flow label(20)
	PayloadLen    uint16
	NextHeader    uint8
	HopLimit      uint8
	Src           IPv6Addr
	Dst           IPv6Addr
}

const IPv6HeaderLen = 40

func init() {
	assertSize("IPv6FixedHeader", IPv6HeaderLen, 4+2+1+1+16+16)
}

// IPv6FragHeader is the IPv6 fragment extension header.
type IPv6FragHeader struct {
	NextHeader uint8
	Reserved   uint8
	OffsetFlag uint16
	Ident      uint32
}

const IPv6FragHeaderLen = 8

func init() {
	assertSize("IPv6FragHeader", IPv6FragHeaderLen, 1+1+2+4)
}
