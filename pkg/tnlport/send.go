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

// InnerFlow is the subset of the inner (pre-encapsulation or
// post-decapsulation) flow that the send and receive paths need:
// whether it's an IP packet at all, and its TTL/DSCP/ECN fields.
type InnerFlow struct {
	IsIP bool
	TTL  uint8
	DSCP uint8 // 0-63, unshifted
	ECN  uint8 // 0-3
}

// Wildcards records which flow fields a send/receive-path operation
// has "unwildcarded" (made significant to the match), the Go
// analogue of the classifier's flow_wildcards companion to a flow.
type Wildcards struct {
	TunID    bool
	IPv6Src  bool
	IPv6Dst  bool
	Flags    uint16 // mask of tunnel flag bits made significant
	IPTOS    bool   // full DSCP+ECN byte
	IPTTL    bool
	PktMark  bool

	InnerTTL  bool
	InnerDSCP bool
	InnerECN  bool
}

// Send mutates flow's tunnel fields in place according to ofport's
// configuration and returns the datapath port to emit on. ok is false
// if ofport is unknown, in which case flow and wc are left untouched.
// wc must be non-nil.
func (r *Registry) Send(ofport PortHandle, flow *packet.FlowTunnel, inner InnerFlow, wc *Wildcards) (odpPort uint32, ok bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	p, found := r.ofports[ofport]
	if !found {
		return 0, false
	}
	cfg, _ := p.Netdev.TunnelConfig()

	if !cfg.IPSrcFlow {
		setOuterAddr(&flow.IPSrc, &flow.IPv6Src, cfg.Ipv6Src)
	}
	if !cfg.IPDstFlow {
		setOuterAddr(&flow.IPDst, &flow.IPv6Dst, cfg.Ipv6Dst)
	}

	// cfg.IPSec selects IPSecMark as the configured pkt_mark; since
	// pkt_mark lives on packet metadata rather than FlowTunnel,
	// callers copy it from Port.Match.PktMark (see Registry.Lookup)
	// into their own mark field themselves.

	if !cfg.OutKeyFlow {
		flow.TunID = cfg.OutKey
	}

	if cfg.TTLInherit && inner.IsIP {
		wc.InnerTTL = true
		flow.IPTTL = inner.TTL
	} else {
		flow.IPTTL = cfg.TTL
	}
	wc.IPTTL = true

	dscp := cfg.TOS & packet.IPDSCPMask
	if cfg.TOSInherit && inner.IsIP {
		wc.InnerDSCP = true
		dscp = inner.DSCP << 2 & packet.IPDSCPMask
	}

	// ECN is always inherited from the inner flow when it's IP, per
	// RFC 6040: the outer header must never carry CE when the inner
	// packet isn't itself ECN-capable.
	ecn := uint8(packet.IPECNNotECT)
	if inner.IsIP {
		wc.InnerECN = true
		if inner.ECN == packet.IPECNCE {
			ecn = packet.IPECNECT0
		} else {
			ecn = inner.ECN
		}
	}
	flow.IPTOS = dscp | ecn
	wc.IPTOS = true

	flow.Flags = 0
	if cfg.DontFragment {
		flow.Flags |= packet.TunFlagDontFragment
	}
	if cfg.Csum {
		flow.Flags |= packet.TunFlagCsum
	}
	if cfg.OutKeyPresent {
		flow.Flags |= packet.TunFlagKeyPresent
	}

	return p.OdpPort, true
}

// setOuterAddr writes cfgAddr into whichever of v4/v6 actually
// carries it: a mapped address sets the IPv4 slot (and clears the
// IPv6 slot), anything else sets the IPv6 slot directly.
func setOuterAddr(v4 *uint32, v6 *packet.IPv6Addr, cfgAddr packet.IPv6Addr) {
	if mapped, ok := cfgAddr.MappedIPv4(); ok {
		*v4 = mapped
		*v6 = packet.IPv6Addr{}
		return
	}
	*v4 = 0
	*v6 = cfgAddr
}

// WCInit unconditionally unwildcards the tunnel-significant fields of
// flow if flow is tunneled (its outer destination is set): the tunnel
// id, both address families' source/destination, the public flag
// bits, full DSCP/TTL, and the packet mark. The outer transport ports
// are deliberately left wildcarded. It also widens the inner ECN mask
// when the outer ECN is CE and the inner packet is IP, since
// ProcessECN may overwrite inner ECN only in that case.
func WCInit(flow *packet.FlowTunnel, innerIsIP bool, wc *Wildcards) {
	if !ShouldReceive(flow) {
		return
	}
	wc.TunID = true
	wc.IPv6Src = true
	wc.IPv6Dst = true
	wc.Flags |= packet.TunFlagOAM | packet.TunFlagDontFragment | packet.TunFlagCsum
	wc.IPTOS = true
	wc.IPTTL = true
	wc.PktMark = true

	if innerIsIP && flow.IPTOS&packet.IPECNMask == packet.IPECNCE {
		wc.InnerECN = true
	}
}

// ProcessECN applies the ECN receive policy for a tunneled flow: a
// CE-marked outer header over a non-ECN-capable inner packet is
// dropped; a CE-marked outer header over an ECN-capable inner packet
// marks the inner packet CE. A non-IP inner packet is never subject to
// this policy and always passes through unchanged, since ECN has no
// meaning for it. It always clears the IPsec mark bit from pktMark, an
// open question inherited unchanged: the original source does this
// unconditionally, even for flows that were never IPsec-protected, and
// whether that is deliberate cleansing or a latent bug cannot be
// determined from the code it was ported from.
func ProcessECN(flow *packet.FlowTunnel, inner *InnerFlow, pktMark *uint32) bool {
	*pktMark &^= IPSecMark

	if !ShouldReceive(flow) {
		return true
	}
	if !inner.IsIP {
		return true
	}
	if flow.IPTOS&packet.IPECNMask != packet.IPECNCE {
		return true
	}
	if inner.ECN == packet.IPECNNotECT {
		return false
	}
	inner.ECN = packet.IPECNCE
	return true
}
