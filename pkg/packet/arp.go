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

// ARPHeader is the fixed 28-byte ARP-for-Ethernet/IPv4 packet body
// (after the Ethernet header), matching arp_eth_header.
type ARPHeader struct {
	HRD   uint16
	PRO   uint16
	HLN   uint8
	PLN   uint8
	OP    uint16
	SHA   EthAddr
	SPA   Aligned32
	THA   EthAddr
	TPA   Aligned32
}

const ARPHeaderLen = 28

func init() { assertSize("ARPHeader", ARPHeaderLen, 2+2+1+1+2+6+4+6+4) }

// ARP/RARP opcodes and hardware/protocol types, per packets.h.
const (
	ARPHRDEthernet = 1
	ARPProIP       = 0x0800

	ARPOpRequest = 1
	ARPOpReply   = 2
	RARPOpRequest = 3
	RARPOpReply   = 4
)

// ComposeARP fills hdr as an ARP-for-Ethernet/IPv4 request or reply.
// op must be ARPOpRequest or ARPOpReply.
func ComposeARP(op uint16, sha EthAddr, spa uint32, tha EthAddr, tpa uint32) ARPHeader {
	var h ARPHeader
	h.HRD = ARPHRDEthernet
	h.PRO = ARPProIP
	h.HLN = EthAddrLen
	h.PLN = 4
	h.OP = op
	h.SHA = sha
	h.SPA.Put(spa)
	h.THA = tha
	h.TPA.Put(tpa)
	return h
}

// ComposeRARP fills hdr as a Reverse ARP request or reply.
func ComposeRARP(op uint16, sha EthAddr, spa uint32, tha EthAddr, tpa uint32) ARPHeader {
	h := ComposeARP(op, sha, spa, tha, tpa)
	h.OP = op
	return h
}
