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

// LLCHeader is the fixed 3-byte 802.2 LLC header.
type LLCHeader struct {
	DSAP uint8
	SSAP uint8
	Ctrl uint8
}

const LLCHeaderLen = 3

func init() { assertSize("LLCHeader", LLCHeaderLen, 3) }

const (
	LLCDSAPSnap = 0xaa
	LLCSSAPSnap = 0xaa
	LLCCtrlSnap = 3

	STPLLCSSAP = 0x42
	STPLLCDSAP = 0x42
	STPLLCCtrl = 0x03
)

// SNAPHeader is the fixed 5-byte SNAP header.
type SNAPHeader struct {
	OrgCode [3]byte
	Type    uint16
}

const SNAPHeaderLen = 5

func init() { assertSize("SNAPHeader", SNAPHeaderLen, 3+2) }

// LLCSNAPHeader is the combined 8-byte LLC+SNAP header.
type LLCSNAPHeader struct {
	LLC  LLCHeader
	SNAP SNAPHeader
}

const LLCSNAPHeaderLen = LLCHeaderLen + SNAPHeaderLen

func init() { assertSize("LLCSNAPHeader", LLCSNAPHeaderLen, 8) }

// VlanHeader is the fixed 4-byte 802.1Q tag.
type VlanHeader struct {
	TCI      uint16 // lowest 12 bits are the VLAN id
	NextType uint16
}

const VlanHeaderLen = 4

func init() { assertSize("VlanHeader", VlanHeaderLen, 4) }

// VlanEthHeader is the combined 18-byte VLAN-tagged Ethernet header.
type VlanEthHeader struct {
	Dst      EthAddr
	Src      EthAddr
	EType    uint16 // always EthTypeVLAN
	TCI      uint16
	NextType uint16
}

const VlanEthHeaderLen = EthHeaderLen + VlanHeaderLen

func init() { assertSize("VlanEthHeader", VlanEthHeaderLen, 6+6+2+2+2) }

// VLAN TCI bit layout, per packets.h.
const (
	VlanVIDMask   = 0x0fff
	VlanVIDShift  = 0
	VlanPCPMask   = 0xe000
	VlanPCPShift  = 13
	VlanCFI       = 0x1000
	VlanCFIShift  = 12
)

// TCIToVID extracts the VLAN id from a TCI already decoded to a
// host-order uint16 (i.e. VlanHeader.TCI after unmarshaling).
// Mirrors vlan_tci_to_vid.
func TCIToVID(tci uint16) uint16 {
	return (tci & VlanVIDMask) >> VlanVIDShift
}

// TCIToPCP extracts the priority code point.
func TCIToPCP(tci uint16) uint8 {
	return uint8((tci & VlanPCPMask) >> VlanPCPShift)
}

// TCIToCFI extracts the Canonical Format Indicator bit.
func TCIToCFI(tci uint16) bool {
	return tci&VlanCFI != 0
}
