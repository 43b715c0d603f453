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

// Buffer is a caller-owned byte slice that the header-composition
// helpers below write into in place, mirroring how OVS builds packets
// directly into a struct dp_packet's allocated tailroom rather than
// through an intermediate object.
type Buffer []byte

// PutEthHeader writes an Ethernet header at the front of b.
func PutEthHeader(b []byte, dst, src EthAddr, etype uint16) {
	copy(b[0:6], dst[:])
	copy(b[6:12], src[:])
	binary.BigEndian.PutUint16(b[12:14], etype)
}

// PutVlanTag writes an 802.1Q tag (TCI + inner ethertype) at b[0:4].
func PutVlanTag(b []byte, tci, innerEType uint16) {
	binary.BigEndian.PutUint16(b[0:2], tci)
	binary.BigEndian.PutUint16(b[2:4], innerEType)
}

// PutIPv4Header writes hdr at the front of b in wire form, with the
// checksum field computed fresh over the serialized header.
func PutIPv4Header(b []byte, hdr IPv4Header) {
	b[0] = hdr.IHLVersion
	b[1] = hdr.TOS
	binary.BigEndian.PutUint16(b[2:4], hdr.TotalLen)
	binary.BigEndian.PutUint16(b[4:6], hdr.ID)
	binary.BigEndian.PutUint16(b[6:8], hdr.FragOff)
	b[8] = hdr.TTL
	b[9] = hdr.Proto
	binary.BigEndian.PutUint16(b[10:12], 0)
	copy(b[12:16], hdr.Src[:])
	copy(b[16:20], hdr.Dst[:])
	binary.BigEndian.PutUint16(b[10:12], Checksum(b[:IPv4HeaderLen]))
}

// PutIPv6Header writes hdr at the front of b in wire form.
func PutIPv6Header(b []byte, hdr IPv6FixedHeader) {
	binary.BigEndian.PutUint32(b[0:4], hdr.VersionTCFlow)
	binary.BigEndian.PutUint16(b[4:6], hdr.PayloadLen)
	b[6] = hdr.NextHeader
	b[7] = hdr.HopLimit
	copy(b[8:24], hdr.Src[:])
	copy(b[24:40], hdr.Dst[:])
}

// RewriteUDPPorts rewrites the source/destination ports of a UDP
// header in place at the front of b, mirroring packet_set_udp_port.
func RewriteUDPPorts(b []byte, src, dst uint16) {
	binary.BigEndian.PutUint16(b[0:2], src)
	binary.BigEndian.PutUint16(b[2:4], dst)
}

// RewriteTCPPorts rewrites the source/destination ports of a TCP
// header in place, mirroring packet_set_tcp_port.
func RewriteTCPPorts(b []byte, src, dst uint16) {
	binary.BigEndian.PutUint16(b[0:2], src)
	binary.BigEndian.PutUint16(b[2:4], dst)
}

// RewriteSCTPPorts rewrites the source/destination ports of an SCTP
// header in place, mirroring packet_set_sctp_port.
func RewriteSCTPPorts(b []byte, src, dst uint16) {
	binary.BigEndian.PutUint16(b[0:2], src)
	binary.BigEndian.PutUint16(b[2:4], dst)
}

// RewriteICMPType rewrites the type/code octets of an ICMP/ICMPv6
// header in place.
func RewriteICMPType(b []byte, typ, code uint8) {
	b[0] = typ
	b[1] = code
}

// PutNDTarget writes a Neighbor Discovery target address into an
// NDMessage's wire representation at b[8:24].
func PutNDTarget(b []byte, target IPv6Addr) {
	copy(b[8:24], target[:])
}

// PutNDOption writes a source/target link-layer-address ND option at
// the front of b.
func PutNDOption(b []byte, typ uint8, mac EthAddr) {
	b[0] = typ
	b[1] = 1 // length in 8-octet units, fixed for a link-layer-address option
	copy(b[2:8], mac[:])
}

// PutARPHeader writes hdr at the front of b in wire form.
func PutARPHeader(b []byte, hdr ARPHeader) {
	binary.BigEndian.PutUint16(b[0:2], hdr.HRD)
	binary.BigEndian.PutUint16(b[2:4], hdr.PRO)
	b[4] = hdr.HLN
	b[5] = hdr.PLN
	binary.BigEndian.PutUint16(b[6:8], hdr.OP)
	copy(b[8:14], hdr.SHA[:])
	copy(b[14:18], hdr.SPA[:])
	copy(b[18:24], hdr.THA[:])
	copy(b[24:28], hdr.TPA[:])
}

// PushVlan inserts a VLAN tag between the Ethernet addresses and the
// ethertype of an existing frame held in b, returning the new slice.
// It mirrors eth_push_vlan's shift-then-insert approach, working on a
// caller-supplied scratch buffer of at least len(b)+VlanHeaderLen.
func PushVlan(scratch, b []byte, tpid, tci uint16) []byte {
	out := scratch[:len(b)+VlanHeaderLen]
	copy(out[0:12], b[0:12])
	binary.BigEndian.PutUint16(out[12:14], tpid)
	binary.BigEndian.PutUint16(out[14:16], tci)
	copy(out[16:], b[12:])
	return out
}

// PopVlan removes the 4-byte VLAN tag starting at offset 12 of b
// (immediately after the two Ethernet addresses), returning the
// shortened slice. Mirrors eth_pop_vlan.
func PopVlan(b []byte) []byte {
	copy(b[12:], b[16:])
	return b[:len(b)-VlanHeaderLen]
}

// PushMPLS inserts a new label stack entry immediately after the
// Ethernet header in b, on top of any existing MPLS stack, writing
// etype as the new outer ethertype. Mirrors eth_push_mpls's header-shift approach.
func PushMPLS(scratch, b []byte, etype uint16, lse uint32) []byte {
	out := scratch[:len(b)+MPLSHeaderLen]
	copy(out[0:12], b[0:12])
	binary.BigEndian.PutUint16(out[12:14], etype)
	binary.BigEndian.PutUint32(out[14:18], lse)
	copy(out[18:], b[14:])
	return out
}

// PopMPLS removes the outermost 4-byte MPLS label stack entry from b,
// writing etype as the new ethertype. Mirrors eth_pop_mpls.
func PopMPLS(b []byte, etype uint16) []byte {
	copy(b[14:], b[18:])
	binary.BigEndian.PutUint16(b[12:14], etype)
	return b[:len(b)-MPLSHeaderLen]
}
