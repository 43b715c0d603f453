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

// UDPHeader is the fixed 8-byte UDP header.
type UDPHeader struct {
	Src, Dst   uint16
	Len        uint16
	Checksum   uint16
}

const UDPHeaderLen = 8

func init() { assertSize("UDPHeader", UDPHeaderLen, 2+2+2+2) }

// TCP control bits, per packets.h.
const (
	TCPFin = 0x001
	TCPSyn = 0x002
	TCPRst = 0x004
	TCPPsh = 0x008
	TCPAck = 0x010
	TCPUrg = 0x020
	TCPECE = 0x040
	TCPCWR = 0x080
	TCPNS  = 0x100
)

// TCPCtl packs flags and a 4-bit data-offset (in 32-bit words) into
// the tcp_ctl field, mirroring TCP_CTL.
func TCPCtl(flags uint16, offset uint8) uint16 {
	return flags | uint16(offset)<<12
}

// TCPFlags extracts the flag bits from a tcp_ctl value.
func TCPFlags(ctl uint16) uint16 { return ctl & 0x0fff }

// TCPOffset extracts the data-offset nibble.
func TCPOffset(ctl uint16) uint8 { return uint8(ctl >> 12) }

// TCPHeader is the fixed 20-byte TCP header (no options). Sequence
// and ack numbers are carried through Aligned32 for the same reason
// as IPv4Header's addresses.
type TCPHeader struct {
	Src, Dst uint16
	Seq      Aligned32
	Ack      Aligned32
	Ctl      uint16
	Window   uint16
	Checksum uint16
	Urgent   uint16
}

const TCPHeaderLen = 20

func init() { assertSize("TCPHeader", TCPHeaderLen, 2+2+4+4+2+2+2+2) }

// SCTPHeader is the fixed 12-byte SCTP common header.
type SCTPHeader struct {
	Src, Dst uint16
	VTag     Aligned32
	Checksum Aligned32
}

const SCTPHeaderLen = 12

func init() { assertSize("SCTPHeader", SCTPHeaderLen, 2+2+4+4) }
