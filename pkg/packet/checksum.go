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

// sumBytes accumulates the 16-bit one's-complement sum of data,
// matching OVS csum.c's csum_add.
func sumBytes(data []byte) uint32 {
	var sum uint32
	n := len(data)
	for i := 0; i+1 < n; i += 2 {
		sum += uint32(binary.BigEndian.Uint16(data[i : i+2]))
	}
	if n&1 == 1 {
		sum += uint32(data[n-1]) << 8
	}
	return sum
}

func foldSum(sum uint32) uint16 {
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return uint16(sum)
}

// Checksum computes the 16-bit one's-complement checksum of data, the
// same algorithm OVS's csum() applies to the outer IPv4 header in
// tnl_port_build_header.
func Checksum(data []byte) uint16 {
	return ^foldSum(sumBytes(data))
}

// IPv4HeaderChecksum computes and returns the checksum over the first
// IPv4HeaderLen bytes of buf; callers must zero the checksum bytes
// (buf[10:12]) before calling unless verifying.
func IPv4HeaderChecksum(buf []byte) uint16 {
	return Checksum(buf[:IPv4HeaderLen])
}

// VerifyChecksum reports whether the one's-complement sum over data
// (which includes the checksum field as transmitted) folds to zero,
// the standard verification invariant for any one's-complement
// checksum, including the outer IPv4 header property spec.md §8
// calls out.
func VerifyChecksum(data []byte) bool {
	return foldSum(sumBytes(data)) == 0xffff
}

// PseudoHeaderSumIPv4 returns the partial checksum accumulator for the
// IPv4 pseudo-header (src, dst, zero, proto, length), to be folded
// together with the TCP/UDP/SCTP segment before complementing.
// Mirrors packet_csum_pseudoheader.
func PseudoHeaderSumIPv4(src, dst uint32, proto uint8, segLen uint16) uint32 {
	var sum uint32
	sum += src >> 16
	sum += src & 0xffff
	sum += dst >> 16
	sum += dst & 0xffff
	sum += uint32(proto)
	sum += uint32(segLen)
	return sum
}

// TransportChecksumIPv4 computes the TCP/UDP/SCTP checksum over segment
// given the IPv4 pseudo-header fields, folding the pseudo-header sum
// together with the segment's own one's-complement sum.
func TransportChecksumIPv4(src, dst uint32, proto uint8, segment []byte) uint16 {
	sum := PseudoHeaderSumIPv4(src, dst, proto, uint16(len(segment)))
	sum += sumBytes(segment)
	return ^foldSum(sum)
}
