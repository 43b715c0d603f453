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

import (
	"fmt"
	"net"
)

// FormatMAC renders a as a colon-separated hex string, the canonical
// form OVS's ETH_ADDR_FMT produces.
func FormatMAC(a EthAddr) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		a[0], a[1], a[2], a[3], a[4], a[5])
}

// FormatIPv4 renders ip (host order) in dotted-quad form.
func FormatIPv4(ip uint32) string {
	return net.IPv4(byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip)).String()
}

// FormatIPv6 renders addr in RFC 5952 canonical form, using the
// v4-mapped dotted-quad shorthand when applicable.
func FormatIPv6(addr IPv6Addr) string {
	return net.IP(addr[:]).String()
}

// FormatIPv6Bracketed renders addr the way a tunnel endpoint address
// is shown inside a larger "addr:port" style string, i.e. bracketed
// unless it is in dotted-quad (v4-mapped) form; the all-zeros address
// is bracketed too ("[::]").
func FormatIPv6Bracketed(addr IPv6Addr) string {
	s := FormatIPv6(addr)
	if _, ok := addr.MappedIPv4(); ok {
		return s
	}
	return "[" + s + "]"
}

// FormatCIDR renders a masked IPv4 address as the bare address when
// netmask is all ones, as "addr/prefixlen" when netmask is any other
// valid CIDR prefix, or "addr/mask" otherwise, mirroring OVS's
// IP_ARGS-with-netmask formatting convention.
func FormatCIDR(ip, netmask uint32) string {
	if netmask == 0xffffffff {
		return FormatIPv4(ip)
	}
	if IsCIDR(netmask) {
		bits := 0
		for m := netmask; m != 0; m <<= 1 {
			bits++
		}
		return fmt.Sprintf("%s/%d", FormatIPv4(ip), bits)
	}
	return fmt.Sprintf("%s/%s", FormatIPv4(ip), FormatIPv4(netmask))
}

// FormatIPv6CIDR renders a masked IPv6 address as "addr/prefixlen"
// when mask is a valid CIDR prefix, or "addr/mask" otherwise.
func FormatIPv6CIDR(addr, mask IPv6Addr) string {
	ones, bits := net.IPMask(mask[:]).Size()
	if bits == 0 {
		return fmt.Sprintf("%s/%s", FormatIPv6(addr), FormatIPv6(mask))
	}
	return fmt.Sprintf("%s/%d", FormatIPv6(addr), ones)
}
