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

import "github.com/loxilb-io/tnlport/pkg/packet"

// ShouldReceive is a pure predicate: true iff flow's outer destination
// IP is set, in either address family.
func ShouldReceive(flow *packet.FlowTunnel) bool {
	return flow.IPDst != 0 || flow.IPv6Dst.IsSet()
}

// Receive resolves the tunnel port claiming flow, searching the 12
// match buckets in fixed priority order (indices 0..11) and returning
// the first bucket's exact-match hit. ingressOdpPort and pktMark are
// the packet-metadata fields the resolver needs but that flow_tnl
// itself does not carry. It returns ErrNoMatch if no port claims the
// flow.
func (r *Registry) Receive(flow *packet.FlowTunnel, ingressOdpPort, pktMark uint32) (PortHandle, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	flowDst := packet.AddrFromV4OrV6(flow.IPDst, flow.IPv6Dst)
	flowSrc := packet.AddrFromV4OrV6(flow.IPSrc, flow.IPv6Src)

	for i := 0; i < numBuckets; i++ {
		bucket := r.buckets[i]
		if bucket == nil {
			continue
		}
		inKeyFlow, ipDstFlow, kind := bucketCoordinates(i)

		var probe Match
		probe.InKeyFlow = inKeyFlow
		probe.IPDstFlow = ipDstFlow
		probe.OdpPort = ingressOdpPort
		probe.PktMark = pktMark

		if !inKeyFlow {
			probe.InKey = flow.TunID
		}
		if kind == ipSrcFLOW {
			probe.IPSrcFlow = true
		} else if kind == ipSrcCFG {
			// The apparent swap is correct: the registry expresses
			// matches from the port's sending perspective, but we are
			// matching a received packet, so the port's configured
			// source is compared against the flow's destination.
			probe.IPv6Src = flowDst
		}
		if !ipDstFlow {
			probe.IPv6Dst = flowSrc
		}

		if p, ok := bucket[probe]; ok {
			return p.OFPort, nil
		}
	}
	return nil, ErrNoMatch
}
