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
	"sync"

	cmn "github.com/loxilb-io/tnlport/common"
	"github.com/loxilb-io/tnlport/pkg/packet"
	tk "github.com/loxilb-io/loxilib"
)

// Registry is a per-instance tunnel-port index: an identity-keyed
// table of ports plus 12 match-tuple buckets partitioned by
// wildcarding pattern. The original OVS module keeps this state as
// process-global; bundling it into a value here lets a process host
// more than one independent switch instance.
type Registry struct {
	mtx     sync.RWMutex
	ofports map[PortHandle]*Port
	buckets [numBuckets]map[Match]*Port

	// Sink receives (odp_port, dst_port, name) registrations for
	// native-tunnel ports. It may be nil if no native tunnels are in
	// use.
	Sink cmn.NativeTunnelSink
}

// NewRegistry returns an empty Registry ready for use. There is no
// process-wide singleton; callers own the instance's lifetime.
func NewRegistry() *Registry {
	return &Registry{
		ofports: make(map[PortHandle]*Port),
	}
}

// bucketFor lazily allocates bucket i if it doesn't exist yet, must be
// called with the write lock held.
func (r *Registry) bucketFor(i int) map[Match]*Port {
	if r.buckets[i] == nil {
		r.buckets[i] = make(map[Match]*Port)
	}
	return r.buckets[i]
}

// freeBucketIfEmpty drops bucket i's map once it has no entries left,
// mirroring the C original's free-when-empty bucket lifecycle.
func (r *Registry) freeBucketIfEmpty(i int) {
	if len(r.buckets[i]) == 0 {
		r.buckets[i] = nil
	}
}

func matchFromConfig(cfg cmn.TunnelConfig, odpPort uint32) Match {
	m := Match{
		InKey:     cfg.InKey,
		IPv6Src:   cfg.Ipv6Src,
		IPv6Dst:   cfg.Ipv6Dst,
		OdpPort:   odpPort,
		InKeyFlow: cfg.InKeyFlow,
		IPSrcFlow: cfg.IPSrcFlow,
		IPDstFlow: cfg.IPDstFlow,
	}
	if cfg.IPSec {
		m.PktMark = IPSecMark
	}
	if m.IPSrcFlow {
		m.IPv6Src = packet.IPv6Addr{}
	}
	if m.InKeyFlow {
		m.InKey = 0
	}
	return m
}

// Add registers ofport as a tunnel port backed by netdev, on datapath
// port odpPort. If nativeTnl is true and Sink is set, it registers
// the (odpPort, dst_port, name) triple with Sink. It returns
// ErrExists (after logging a warning naming the conflicting port)
// when a port with an identical match tuple is already registered.
func (r *Registry) Add(ofport PortHandle, netdev NetdevProvider, odpPort uint32, nativeTnl bool, name string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.addLocked(ofport, netdev, odpPort, nativeTnl, name, true)
}

func (r *Registry) addLocked(ofport PortHandle, netdev NetdevProvider, odpPort uint32, nativeTnl bool, name string, warn bool) error {
	cfg, ok := netdev.TunnelConfig()
	if !ok {
		cfg = cmn.TunnelConfig{}
	}
	match := matchFromConfig(cfg, odpPort)
	bi := bucketIndex(match)
	bucket := r.bucketFor(bi)

	if existing, found := bucket[match]; found {
		if warn {
			tk.LogIt(tk.LogError, "tnlport: add %s conflicts with existing port %s: %s\n",
				name, existing.Name, match.String())
		}
		return ErrExists
	}

	p := &Port{
		OFPort:    ofport,
		Netdev:    netdev,
		ChangeSeq: netdev.ChangeSeq(),
		Match:     match,
		OdpPort:   odpPort,
		Name:      name,
		NativeTnl: nativeTnl,
	}
	bucket[match] = p
	r.ofports[ofport] = p

	if nativeTnl && r.Sink != nil {
		r.Sink.Insert(odpPort, cfg.DstPort, name)
	}
	return nil
}

// Del unregisters ofport. Unknown handles are a silent no-op.
func (r *Registry) Del(ofport PortHandle) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.delLocked(ofport)
}

func (r *Registry) delLocked(ofport PortHandle) {
	p, ok := r.ofports[ofport]
	if !ok {
		return
	}
	if p.NativeTnl && r.Sink != nil {
		if cfg, ok := p.Netdev.TunnelConfig(); ok {
			r.Sink.Delete(cfg.DstPort)
		}
	}
	bi := bucketIndex(p.Match)
	delete(r.buckets[bi], p.Match)
	r.freeBucketIfEmpty(bi)
	delete(r.ofports, ofport)
}

// Reconfigure ensures ofport's registration matches netdev's current
// state, adding it if unseen, or deleting and re-adding it if the
// netdev reference, odp port, or cached change sequence has moved. It
// reports whether anything changed.
func (r *Registry) Reconfigure(ofport PortHandle, netdev NetdevProvider, odpPort uint32, nativeTnl bool, name string) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	existing, ok := r.ofports[ofport]
	if !ok {
		return r.addLocked(ofport, netdev, odpPort, nativeTnl, name, false) == nil
	}

	if existing.Netdev == netdev && existing.OdpPort == odpPort && existing.ChangeSeq == netdev.ChangeSeq() {
		return false
	}

	r.delLocked(ofport)
	_ = r.addLocked(ofport, netdev, odpPort, nativeTnl, name, false)
	return true
}

// Lookup returns the port registered under ofport, if any. It takes
// the read lock, making it safe to call concurrently with other
// readers.
func (r *Registry) Lookup(ofport PortHandle) (*Port, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	p, ok := r.ofports[ofport]
	return p, ok
}

// Len reports the number of registered ports, for tests exercising
// the add/del round-trip property.
func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.ofports)
}

// emptyBuckets reports whether every bucket pointer is nil, the state
// the add/del round-trip property expects once all ports are removed.
func (r *Registry) emptyBuckets() bool {
	for _, b := range r.buckets {
		if b != nil {
			return false
		}
	}
	return true
}
