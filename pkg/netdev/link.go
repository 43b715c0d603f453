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

// Package netdev adapts a real kernel VXLAN/GRE link, discovered via
// netlink, into the tnlport.NetdevProvider interface the registry
// consumes.
package netdev

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	nlp "github.com/vishvananda/netlink"

	cmn "github.com/loxilb-io/tnlport/common"
	"github.com/loxilb-io/tnlport/pkg/packet"
)

// LinkTunnelDev wraps a netlink VXLAN or GRE-tap link, tracking a
// change sequence that advances on every Refresh call that observes a
// configuration difference. It implements tnlport.NetdevProvider.
type LinkTunnelDev struct {
	mtx  sync.Mutex
	name string
	typ  string
	cfg  cmn.TunnelConfig
	seq  uint64
}

// NewFromLink builds a LinkTunnelDev from a netlink.Link already
// resolved by the caller (e.g. via netlink.LinkByName), reading its
// tunnel attributes if it is a *netlink.Vxlan or a *netlink.Gretap and
// leaving cfg zeroed (no tunnel configuration) otherwise.
func NewFromLink(link nlp.Link) *LinkTunnelDev {
	d := &LinkTunnelDev{name: link.Attrs().Name}
	switch v := link.(type) {
	case *nlp.Vxlan:
		d.typ = "vxlan"
		d.cfg = cmn.TunnelConfig{
			InKey:        uint64(v.VxlanId),
			DstPort:      uint16(v.Port),
			Csum:         v.UDPCSum,
			TTL:          uint8(v.TTL),
			TTLInherit:   v.TTL == 0,
			DontFragment: true,
		}
		if v.SrcAddr != nil {
			if v4 := v.SrcAddr.To4(); v4 != nil {
				d.cfg.Ipv6Src.SetMappedIPv4(binary.BigEndian.Uint32(v4))
			}
		}
		if v.Group != nil {
			if v4 := v.Group.To4(); v4 != nil {
				d.cfg.Ipv6Dst.SetMappedIPv4(binary.BigEndian.Uint32(v4))
			}
		}
	case *nlp.Gretap:
		d.typ = "gre"
		d.cfg = cmn.TunnelConfig{
			InKey: uint64(v.IKey),
			TTL:   v.Ttl,
		}
		if v.Local != nil {
			if v4 := v.Local.To4(); v4 != nil {
				d.cfg.Ipv6Src.SetMappedIPv4(binary.BigEndian.Uint32(v4))
			}
		}
		if v.Remote != nil {
			if v4 := v.Remote.To4(); v4 != nil {
				d.cfg.Ipv6Dst.SetMappedIPv4(binary.BigEndian.Uint32(v4))
			}
		}
	default:
		return d
	}
	return d
}

// TunnelConfig implements tnlport.NetdevProvider.
func (d *LinkTunnelDev) TunnelConfig() (cmn.TunnelConfig, bool) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.typ == "" {
		return cmn.TunnelConfig{}, false
	}
	return d.cfg, true
}

// ChangeSeq implements tnlport.NetdevProvider.
func (d *LinkTunnelDev) ChangeSeq() uint64 {
	return atomic.LoadUint64(&d.seq)
}

// Name implements tnlport.NetdevProvider.
func (d *LinkTunnelDev) Name() string { return d.name }

// Type implements tnlport.NetdevProvider.
func (d *LinkTunnelDev) Type() string { return d.typ }

// Refresh replaces the cached configuration with cfg, bumping the
// change sequence iff cfg differs from what was cached, so a
// subsequent tnlport.Registry.Reconfigure notices the drift.
func (d *LinkTunnelDev) Refresh(cfg cmn.TunnelConfig) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.cfg == cfg {
		return
	}
	d.cfg = cfg
	atomic.AddUint64(&d.seq, 1)
}

// BuildTunnelHeader implements tnlport.NetdevProvider for VXLAN links:
// it appends a UDP header and VXLAN header carrying flow's tunnel id
// as the VNI. GRE links are not yet supported by this builder and
// return an error, matching the header-finalization-failure error
// class the registry propagates verbatim.
func (d *LinkTunnelDev) BuildTunnelHeader(buf []byte, flow *packet.FlowTunnel) (int, error) {
	const outer = packet.EthHeaderLen + packet.IPv4HeaderLen
	switch d.typ {
	case "vxlan":
		need := outer + packet.UDPHeaderLen + packet.VXLANHeaderLen
		if len(buf) < need {
			return 0, fmt.Errorf("netdev: buffer too small for vxlan header: have %d, need %d", len(buf), need)
		}
		udp := buf[outer : outer+packet.UDPHeaderLen]
		packet.RewriteUDPPorts(udp, flow.TPSrc, d.cfg.DstPort)
		binary.BigEndian.PutUint16(udp[4:6], uint16(need-outer))

		vx := MakeVXLANBytes(uint32(flow.TunID))
		copy(buf[outer+packet.UDPHeaderLen:need], vx[:])

		ipHdr := buf[packet.EthHeaderLen : packet.EthHeaderLen+packet.IPv4HeaderLen]
		binary.BigEndian.PutUint16(ipHdr[2:4], uint16(need-packet.EthHeaderLen))
		ipHdr[9] = 17 // UDP
		return need, nil
	default:
		return 0, fmt.Errorf("netdev: unsupported tunnel type %q", d.typ)
	}
}

// MakeVXLANBytes serializes a VXLAN header carrying vni into its
// 8-byte wire form.
func MakeVXLANBytes(vni uint32) [packet.VXLANHeaderLen]byte {
	h := packet.MakeVXLANHeader(vni)
	var out [packet.VXLANHeaderLen]byte
	f := h.Flags.Get()
	binary.BigEndian.PutUint32(out[0:4], f)
	binary.BigEndian.PutUint32(out[4:8], h.VNI.Get())
	return out
}
