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

// ICMPHeader is the fixed 8-byte ICMPv4 header; the trailing 4 bytes
// are a union of echo id/seq, fragmentation-needed MTU, or a
// 16-bit-aligned gateway address depending on Type/Code.
type ICMPHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	Rest     Aligned32
}

const ICMPHeaderLen = 8

func init() { assertSize("ICMPHeader", ICMPHeaderLen, 1+1+2+4) }

// EchoIDSeq decodes Rest as the echo request/reply id/seq pair.
func (h ICMPHeader) EchoIDSeq() (id, seq uint16) {
	v := h.Rest.Get()
	return uint16(v >> 16), uint16(v)
}

// FragMTU decodes Rest as the fragmentation-needed MTU (low 16 bits).
func (h ICMPHeader) FragMTU() uint16 {
	return uint16(h.Rest.Get())
}

// IGMPHeader is the fixed 8-byte IGMPv1/v2 header.
type IGMPHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	Group    Aligned32
}

const IGMPHeaderLen = 8

func init() { assertSize("IGMPHeader", IGMPHeaderLen, 1+1+2+4) }

// IGMPv3Header is the fixed 8-byte IGMPv3 membership-query header.
type IGMPv3Header struct {
	Type     uint8
	Rsvr1    uint8
	Checksum uint16
	Rsvr2    uint16
	NGroups  uint16
}

const IGMPv3HeaderLen = 8

func init() { assertSize("IGMPv3Header", IGMPv3HeaderLen, 1+1+2+2+2) }

// IGMPv3Record is the fixed 8-byte (excluding source list) IGMPv3
// group-record header.
type IGMPv3Record struct {
	Type    uint8
	AuxLen  uint8
	NSrcs   uint16
	MAddr   Aligned32
}

const IGMPv3RecordLen = 8

func init() { assertSize("IGMPv3Record", IGMPv3RecordLen, 1+1+2+4) }

// IGMP message types, per packets.h.
const (
	IGMPHostMembershipQuery    = 0x11
	IGMPHostMembershipReport   = 0x12
	IGMPv2HostMembershipReport = 0x16
	IGMPHostLeaveMessage       = 0x17
	IGMPv3HostMembershipReport = 0x22

	IGMPv3ModeIsInclude         = 1
	IGMPv3ModeIsExclude         = 2
	IGMPv3ChangeToIncludeMode   = 3
	IGMPv3ChangeToExcludeMode   = 4
	IGMPv3AllowNewSources       = 5
	IGMPv3BlockOldSources       = 6
)

// ICMPv6Header is the fixed 4-byte ICMPv6 header.
type ICMPv6Header struct {
	Type     uint8
	Code     uint8
	Checksum uint16
}

const ICMPv6HeaderLen = 4

func init() { assertSize("ICMPv6Header", ICMPv6HeaderLen, 1+1+2) }

// NDOption is the fixed 8-byte Neighbor Discovery option header
// (source/target link-layer address options carry an Ethernet
// address in the remaining bytes).
type NDOption struct {
	Type uint8
	Len  uint8 // in units of 8 octets
	MAC  EthAddr
}

const NDOptionLen = 8

func init() { assertSize("NDOption", NDOptionLen, 1+1+6) }

// NDMessage is the fixed 24-byte Neighbor Discovery message header
// (Neighbor Solicitation/Advertisement), 16-bit aligned.
type NDMessage struct {
	ICMPv6    ICMPv6Header
	RCOFlags  Aligned32
	Target    Aligned128
}

const NDMessageLen = 24

func init() { assertSize("NDMessage", NDMessageLen, ICMPv6HeaderLen+4+16) }

// MLDHeader is the fixed 8-byte MLD/MLDv2-query header; field names
// follow whichever version is in play (code/mrd are reserved in MLD,
// ngrp is reserved in MLDv2).
type MLDHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	MRD      uint16
	NGroups  uint16
}

const MLDHeaderLen = 8

func init() { assertSize("MLDHeader", MLDHeaderLen, 1+1+2+2+2) }

// MLDv2Record is the fixed 20-byte (excluding source list) MLDv2
// group-record header.
type MLDv2Record struct {
	Type   uint8
	AuxLen uint8
	NSrcs  uint16
	MAddr  Aligned128
}

const MLDv2RecordLen = 20

func init() { assertSize("MLDv2Record", MLDv2RecordLen, 1+1+2+16) }

const (
	MLDQuery   = 130
	MLDReport  = 131
	MLDDone    = 132
	MLDv2Report = 143
)
