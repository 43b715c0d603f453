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
	"testing"

	cmn "github.com/loxilb-io/tnlport/common"
	"github.com/loxilb-io/tnlport/pkg/packet"
)

type fakeNetdev struct {
	cfg       cmn.TunnelConfig
	hasCfg    bool
	changeSeq uint64
	name      string
}

func (f *fakeNetdev) TunnelConfig() (cmn.TunnelConfig, bool) { return f.cfg, f.hasCfg }
func (f *fakeNetdev) ChangeSeq() uint64                      { return f.changeSeq }
func (f *fakeNetdev) Name() string                           { return f.name }
func (f *fakeNetdev) Type() string                           { return "vxlan" }
func (f *fakeNetdev) BuildTunnelHeader(buf []byte, flow *packet.FlowTunnel) (int, error) {
	return OuterHeaderLen, nil
}

func mappedV4(ip uint32) packet.IPv6Addr {
	var a packet.IPv6Addr
	a.SetMappedIPv4(ip)
	return a
}

func TestBucketAssignment(t *testing.T) {
	cases := []struct {
		m    Match
		want int
	}{
		{Match{}, 1}, // no src configured -> ANY(1), dst/in_key not flow
		{Match{IPv6Src: mappedV4(1)}, 0},
		{Match{IPSrcFlow: true}, 2},
		{Match{InKeyFlow: true}, 7},
		{Match{IPDstFlow: true}, 4},
		{Match{InKeyFlow: true, IPDstFlow: true, IPSrcFlow: true}, 11},
	}
	for _, c := range cases {
		if got := bucketIndex(c.m); got != c.want {
			t.Errorf("bucketIndex(%+v) = %d, want %d", c.m, got, c.want)
		}
	}
}

func TestAddDelRoundTrip(t *testing.T) {
	r := NewRegistry()
	ports := []PortHandle{"p1", "p2", "p3"}
	for i, p := range ports {
		nd := &fakeNetdev{hasCfg: true, name: string(p.(string)), cfg: cmn.TunnelConfig{
			Ipv6Src: mappedV4(uint32(10<<24 | 1)),
			Ipv6Dst: mappedV4(uint32(10<<24 | uint32(2+i))),
		}}
		if err := r.Add(p, nd, uint32(i), false, nd.name); err != nil {
			t.Fatalf("Add(%v) = %v", p, err)
		}
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	for _, p := range ports {
		r.Del(p)
	}
	if r.Len() != 0 {
		t.Fatalf("Len() after deletes = %d, want 0", r.Len())
	}
	if !r.emptyBuckets() {
		t.Fatalf("buckets not freed after all ports removed")
	}
}

func TestDuplicateAddRejected(t *testing.T) {
	r := NewRegistry()
	cfg := cmn.TunnelConfig{
		Ipv6Src: mappedV4(10<<24 | 1),
		Ipv6Dst: mappedV4(10<<24 | 2),
	}
	nd1 := &fakeNetdev{hasCfg: true, cfg: cfg, name: "x"}
	nd2 := &fakeNetdev{hasCfg: true, cfg: cfg, name: "x2"}

	if err := r.Add("x", nd1, 3, false, "x"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := r.Add("x2", nd2, 3, false, "x2"); err != ErrExists {
		t.Fatalf("second Add = %v, want ErrExists", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (no side effect from rejected add)", r.Len())
	}
}

func TestReconfigureTrigger(t *testing.T) {
	r := NewRegistry()
	cfg := cmn.TunnelConfig{Ipv6Src: mappedV4(1), Ipv6Dst: mappedV4(2)}
	nd := &fakeNetdev{hasCfg: true, cfg: cfg, name: "p", changeSeq: 1}

	if changed := r.Reconfigure("p", nd, 3, false, "p"); !changed {
		t.Fatalf("first Reconfigure should add and report changed")
	}
	if changed := r.Reconfigure("p", nd, 3, false, "p"); changed {
		t.Fatalf("Reconfigure with unchanged netdev/odp_port/change_seq reported changed")
	}
	nd.changeSeq = 2
	if changed := r.Reconfigure("p", nd, 3, false, "p"); !changed {
		t.Fatalf("Reconfigure after change_seq bump should report changed")
	}
}

// TestReconfigureUnseenCollisionReportsUnchanged exercises an unseen
// ofport whose match tuple collides with an existing port: addLocked
// rejects it with ErrExists, and Reconfigure must propagate that as
// changed=false rather than unconditionally reporting true.
func TestReconfigureUnseenCollisionReportsUnchanged(t *testing.T) {
	r := NewRegistry()
	cfg := cmn.TunnelConfig{Ipv6Src: mappedV4(1), Ipv6Dst: mappedV4(2)}
	if err := r.Add("p1", &fakeNetdev{hasCfg: true, cfg: cfg, name: "p1"}, 3, false, "p1"); err != nil {
		t.Fatalf("Add p1: %v", err)
	}

	nd2 := &fakeNetdev{hasCfg: true, cfg: cfg, name: "p2"}
	if changed := r.Reconfigure("p2", nd2, 3, false, "p2"); changed {
		t.Fatalf("Reconfigure of an unseen, colliding ofport reported changed=true, want false")
	}
	if _, ok := r.Lookup("p2"); ok {
		t.Fatalf("colliding ofport must not be registered")
	}
}

// TestS1SimpleVXLANIngress exercises scenario S1 from the resolver
// specification: a fully configured (non-flow) match resolves a
// matching flow.
func TestS1SimpleVXLANIngress(t *testing.T) {
	r := NewRegistry()
	cfg := cmn.TunnelConfig{
		Ipv6Src: mappedV4(0x0a000001),
		Ipv6Dst: mappedV4(0x0a000002),
	}
	nd := &fakeNetdev{hasCfg: true, cfg: cfg, name: "X"}
	if err := r.Add("X", nd, 3, false, "X"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	flow := &packet.FlowTunnel{
		IPSrc: 0x0a000002,
		IPDst: 0x0a000001,
		TunID: 0,
	}
	if !ShouldReceive(flow) {
		t.Fatalf("ShouldReceive should be true")
	}
	got, err := r.Receive(flow, 3, 0)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if got != PortHandle("X") {
		t.Fatalf("Receive returned %v, want X", got)
	}
}

// TestS2FlowIDTunnel exercises scenario S2: an in_key_flow port
// matches regardless of tun_id, and Receive does not mutate the flow.
func TestS2FlowIDTunnel(t *testing.T) {
	r := NewRegistry()
	cfg := cmn.TunnelConfig{
		InKeyFlow: true,
		Ipv6Src:   mappedV4(0x0a000001),
		Ipv6Dst:   mappedV4(0x0a000002),
	}
	nd := &fakeNetdev{hasCfg: true, cfg: cfg, name: "Y"}
	if err := r.Add("Y", nd, 3, false, "Y"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	flow := &packet.FlowTunnel{
		IPSrc: 0x0a000002,
		IPDst: 0x0a000001,
		TunID: 0xDEADBEEF,
	}
	got, err := r.Receive(flow, 3, 0)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if got != PortHandle("Y") {
		t.Fatalf("Receive returned %v, want Y", got)
	}
	if flow.TunID != 0xDEADBEEF {
		t.Fatalf("Receive must not mutate flow.TunID, got %#x", flow.TunID)
	}
}

// TestPriorityInvariant exercises testable property 5: when two ports
// could both match a flow, the lower bucket index wins.
func TestPriorityInvariant(t *testing.T) {
	r := NewRegistry()
	p1cfg := cmn.TunnelConfig{
		InKey:   0x10,
		Ipv6Src: mappedV4(0x0a000001),
		Ipv6Dst: mappedV4(0x0a000002),
	}
	p2cfg := cmn.TunnelConfig{
		InKeyFlow: true,
		Ipv6Dst:   mappedV4(0x0a000002),
	}
	if err := r.Add("P1", &fakeNetdev{hasCfg: true, cfg: p1cfg, name: "P1"}, 5, false, "P1"); err != nil {
		t.Fatalf("Add P1: %v", err)
	}
	if err := r.Add("P2", &fakeNetdev{hasCfg: true, cfg: p2cfg, name: "P2"}, 5, false, "P2"); err != nil {
		t.Fatalf("Add P2: %v", err)
	}

	flow1 := &packet.FlowTunnel{IPSrc: 0x0a000002, IPDst: 0x0a000001, TunID: 0x10}
	got, err := r.Receive(flow1, 5, 0)
	if err != nil || got != PortHandle("P1") {
		t.Fatalf("Receive(key=0x10) = %v, %v; want P1", got, err)
	}

	flow2 := &packet.FlowTunnel{IPSrc: 0x0a000002, IPDst: 0x0a000001, TunID: 0x11}
	got2, err2 := r.Receive(flow2, 5, 0)
	if err2 != nil || got2 != PortHandle("P2") {
		t.Fatalf("Receive(key=0x11) = %v, %v; want P2", got2, err2)
	}
}

func TestECNReceiveTable(t *testing.T) {
	cases := []struct {
		innerECN uint8
		wantOK   bool
		wantECN  uint8
	}{
		{packet.IPECNNotECT, false, packet.IPECNNotECT},
		{packet.IPECNECT0, true, packet.IPECNCE},
		{packet.IPECNECT1, true, packet.IPECNCE},
		{packet.IPECNCE, true, packet.IPECNCE},
	}
	for _, c := range cases {
		flow := &packet.FlowTunnel{IPDst: 1, IPTOS: packet.IPECNCE}
		inner := &InnerFlow{IsIP: true, ECN: c.innerECN}
		mark := uint32(IPSecMark)
		ok := ProcessECN(flow, inner, &mark)
		if ok != c.wantOK {
			t.Errorf("inner ECN=%d: ProcessECN = %v, want %v", c.innerECN, ok, c.wantOK)
		}
		if ok && inner.ECN != c.wantECN {
			t.Errorf("inner ECN=%d: resulting inner ECN = %d, want %d", c.innerECN, inner.ECN, c.wantECN)
		}
		if mark&IPSecMark != 0 {
			t.Errorf("IPsec mark bit not cleared")
		}
	}
}

// TestECNNonIPInnerAlwaysPasses exercises the is_ip_any(flow) guard:
// a CE-marked outer header over a non-IP inner packet (e.g. L2-over-
// VXLAN) must never be dropped, since ECN has no meaning for it.
func TestECNNonIPInnerAlwaysPasses(t *testing.T) {
	flow := &packet.FlowTunnel{IPDst: 1, IPTOS: packet.IPECNCE}
	inner := &InnerFlow{IsIP: false}
	mark := uint32(IPSecMark)
	if !ProcessECN(flow, inner, &mark) {
		t.Fatalf("non-IP inner over CE-marked outer must pass through, not drop")
	}
	if inner.ECN != packet.IPECNNotECT {
		t.Fatalf("non-IP inner ECN must be left unchanged, got %d", inner.ECN)
	}
	if mark&IPSecMark != 0 {
		t.Errorf("IPsec mark bit not cleared")
	}
}

func TestECNNotCEPassesThroughUnchanged(t *testing.T) {
	flow := &packet.FlowTunnel{IPDst: 1, IPTOS: packet.IPECNECT0}
	inner := &InnerFlow{IsIP: true, ECN: packet.IPECNECT1}
	mark := uint32(0)
	if !ProcessECN(flow, inner, &mark) {
		t.Fatalf("non-CE outer should never drop")
	}
	if inner.ECN != packet.IPECNECT1 {
		t.Fatalf("non-CE outer must leave inner ECN unchanged, got %d", inner.ECN)
	}
}

func TestSendWithTTLInherit(t *testing.T) {
	r := NewRegistry()
	cfg := cmn.TunnelConfig{
		TTLInherit:    true,
		TOSInherit:    false,
		TOS:           0x10,
		DontFragment:  true,
		Csum:          false,
		OutKeyPresent: true,
		OutKey:        0x7,
	}
	nd := &fakeNetdev{hasCfg: true, cfg: cfg, name: "Z"}
	if err := r.Add("Z", nd, 9, false, "Z"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	flow := &packet.FlowTunnel{}
	inner := InnerFlow{IsIP: true, TTL: 64, ECN: packet.IPECNECT0}
	wc := &Wildcards{}

	odpPort, ok := r.Send("Z", flow, inner, wc)
	if !ok {
		t.Fatalf("Send failed for registered port")
	}
	if odpPort != 9 {
		t.Fatalf("odpPort = %d, want 9", odpPort)
	}
	if flow.IPTTL != 64 {
		t.Fatalf("flow.IPTTL = %d, want 64", flow.IPTTL)
	}
	if flow.IPTOS != 0x12 {
		t.Fatalf("flow.IPTOS = %#x, want 0x12", flow.IPTOS)
	}
	if flow.TunID != 7 {
		t.Fatalf("flow.TunID = %d, want 7", flow.TunID)
	}
	if flow.Flags&packet.TunFlagDontFragment == 0 || flow.Flags&packet.TunFlagKeyPresent == 0 {
		t.Fatalf("expected DONT_FRAGMENT and KEY flags set, got %#x", flow.Flags)
	}
	if flow.Flags&packet.TunFlagCsum != 0 {
		t.Fatalf("CSUM flag should be clear")
	}
	if !wc.InnerTTL || !wc.InnerECN {
		t.Fatalf("expected inner TTL and ECN wildcard masks set")
	}
}

func TestSendUnknownPort(t *testing.T) {
	r := NewRegistry()
	flow := &packet.FlowTunnel{}
	wc := &Wildcards{}
	if _, ok := r.Send("nope", flow, InnerFlow{}, wc); ok {
		t.Fatalf("Send on unknown port should report ok=false")
	}
}
