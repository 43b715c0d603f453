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

package tnlport

import (
	"encoding/binary"

	"github.com/loxilb-io/tnlport/pkg/packet"
)

// OuterHeaderLen is the fixed length of the Ethernet+IPv4 prefix
// BuildHeader writes before delegating to the netdev's protocol
// callback for the L4/tunnel bytes that follow.
const OuterHeaderLen = packet.EthHeaderLen + packet.IPv4HeaderLen

// BuildHeader composes the outer Ethernet-II + IPv4 frame prefix for
// a push-tunnel action on ofport, then delegates to the netdev's
// BuildTunnelHeader to append the protocol-specific L4 and tunnel
// bytes. buf must have at least OuterHeaderLen bytes of capacity
// beyond whatever the netdev callback itself requires. It returns the
// total number of bytes written, or ErrNoSuchPort if ofport is
// unknown.
func (r *Registry) BuildHeader(ofport PortHandle, flow *packet.FlowTunnel, dstMAC, srcMAC packet.EthAddr, srcIP uint32, buf []byte) (int, error) {
	p, ok := r.Lookup(ofport)
	if !ok {
		return 0, ErrNoSuchPort
	}

	packet.PutEthHeader(buf, dstMAC, srcMAC, packet.EthTypeIP)

	fragOff := uint16(0)
	if flow.Flags&packet.TunFlagDontFragment != 0 {
		fragOff = packet.IPDontFragment
	}
	hdr := packet.IPv4Header{
		IHLVersion: packet.IPIHLVer(5, packet.IPVersion),
		TOS:        flow.IPTOS,
		TotalLen:   0, // the netdev callback fills in total length once it knows the payload size
		ID:         0,
		FragOff:    fragOff,
		TTL:        flow.IPTTL,
		Proto:      0, // likewise determined by the tunnel protocol
	}
	hdr.Src.Put(srcIP)
	hdr.Dst.Put(flow.IPDst)
	packet.PutIPv4Header(buf[packet.EthHeaderLen:packet.EthHeaderLen+packet.IPv4HeaderLen], hdr)

	n, err := p.Netdev.BuildTunnelHeader(buf, flow)
	if err != nil {
		return 0, err
	}

	// The tunnel callback may have rewritten total length/protocol
	// once it knew the full outer frame's size; recompute the IPv4
	// checksum over whatever it left behind in the header region.
	ipHdr := buf[packet.EthHeaderLen : packet.EthHeaderLen+packet.IPv4HeaderLen]
	binary.BigEndian.PutUint16(ipHdr[10:12], 0)
	binary.BigEndian.PutUint16(ipHdr[10:12], packet.IPv4HeaderChecksum(ipHdr))

	if n < OuterHeaderLen {
		n = OuterHeaderLen
	}
	return n, nil
}
