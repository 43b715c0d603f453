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

import (
	"encoding/binary"
	"hash/fnv"
)

// Tunnel flag bits, per flow_tnl's flags word. OAM is externally
// visible; DontFragment and Csum mirror the outer-header builder's
// input; KeyPresent and UDPIF are private/internal bookkeeping.
const (
	TunFlagOAM         uint16 = 1 << 0
	TunFlagDontFragment uint16 = 1 << 1
	TunFlagCsum        uint16 = 1 << 2
	TunFlagKeyPresent  uint16 = 1 << 3
	TunFlagUDPIF       uint16 = 1 << 4
)

// FlowTunnel is the Go analogue of flow_tnl: the per-packet tunnel
// header descriptor threaded through the receive and send paths.
// Field order matters — EffectiveSize below treats this struct as a
// sequence of regions to be included or excluded as a contiguous
// prefix, so fields must stay in the order documented next to each
// region boundary and no field may be reordered independently of the
// comments describing the invariant.
type FlowTunnel struct {
	// region: header, always included when IPDst or IPv6Dst is set.
	IPDst   uint32   // 0 means "no IPv4 destination"
	IPSrc   uint32
	IPv6Dst IPv6Addr
	IPv6Src IPv6Addr

	TunID   uint64 // in_key, network order semantics preserved as a plain uint64 value
	Flags   uint16
	IPTOS   uint8 // combined DSCP/ECN byte
	IPTTL   uint8

	TPSrc uint16 // outer transport source port
	TPDst uint16 // outer transport destination port

	GbpID    uint16
	GbpFlags uint8

	_pad uint8

	// region: metadata, included per the EffectiveSize rules below.
	Metadata *TunnelMetadata
}

// effectiveHeaderLen is the byte offset of the metadata region: every
// field up to and including GbpFlags plus padding.
const effectiveHeaderLen = 4 + 4 + 16 + 16 + 8 + 2 + 1 + 1 + 2 + 2 + 2 + 1 + 1

// srcSlotLen is the byte offset through the end of the source-IP
// slots (IPDst, IPSrc, IPv6Dst, IPv6Src), the prefix used when no
// destination is set at all.
const srcSlotLen = 4 + 4 + 16 + 16

// EffectiveSize reports the smallest prefix length, in bytes, that
// covers t's meaningful fields, mirroring flow_tnl's effective-size
// computation: an unset destination truncates to the address slots;
// the raw-format (UDPIF) flag truncates to the metadata's opaque
// option bytes; an empty TLV presence map truncates to the start of
// the options area; otherwise the full record, including the option
// bytes, counts.
func (t *FlowTunnel) EffectiveSize() int {
	if t.IPDst == 0 && !t.IPv6Dst.IsSet() {
		return srcSlotLen
	}
	if t.Flags&TunFlagUDPIF != 0 {
		n := effectiveHeaderLen
		if t.Metadata != nil {
			n += len(t.Metadata.Opts())
		}
		return n
	}
	if t.Metadata == nil || t.Metadata.Count() == 0 {
		return effectiveHeaderLen
	}
	return effectiveHeaderLen + len(t.Metadata.Opts())
}

// Equal reports whether a and b have matching effective sizes and
// identical bytes over the region each size covers. Uninitialized
// tail fields beyond the effective size are never compared, matching
// the property that equality must coincide with hash-equality for
// identically-sized effective records.
func (a *FlowTunnel) Equal(b *FlowTunnel) bool {
	if a == nil || b == nil {
		return a == b
	}
	sa, sb := a.EffectiveSize(), b.EffectiveSize()
	if sa != sb {
		return false
	}
	if a.IPDst != b.IPDst || a.IPv6Dst != b.IPv6Dst {
		return false
	}
	if sa <= srcSlotLen {
		return a.IPSrc == b.IPSrc && a.IPv6Src == b.IPv6Src
	}
	if a.IPSrc != b.IPSrc || a.IPv6Src != b.IPv6Src {
		return false
	}
	if a.TunID != b.TunID || a.Flags != b.Flags || a.IPTOS != b.IPTOS ||
		a.IPTTL != b.IPTTL || a.TPSrc != b.TPSrc || a.TPDst != b.TPDst ||
		a.GbpID != b.GbpID || a.GbpFlags != b.GbpFlags {
		return false
	}
	if sa <= effectiveHeaderLen {
		return true
	}
	return a.Metadata.Equal(b.Metadata)
}

// Hash computes an FNV-1a hash over exactly the bytes EffectiveSize
// covers, so that two FlowTunnel values with matching effective size
// and matching covered bytes always hash equal — the property
// EffectiveSize monotonicity and Equal both depend on. It never reads
// past the effective size, so uninitialized tail bytes can never
// leak into the hash.
func (t *FlowTunnel) Hash(basis uint32) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte{
		byte(t.IPDst >> 24), byte(t.IPDst >> 16), byte(t.IPDst >> 8), byte(t.IPDst),
	})
	size := t.EffectiveSize()
	if size <= srcSlotLen {
		_, _ = h.Write([]byte{
			byte(t.IPSrc >> 24), byte(t.IPSrc >> 16), byte(t.IPSrc >> 8), byte(t.IPSrc),
		})
		_, _ = h.Write(t.IPv6Dst[:])
		_, _ = h.Write(t.IPv6Src[:])
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], basis)
		_, _ = h.Write(b[:])
		return h.Sum32()
	}
	_, _ = h.Write([]byte{
		byte(t.IPSrc >> 24), byte(t.IPSrc >> 16), byte(t.IPSrc >> 8), byte(t.IPSrc),
	})
	_, _ = h.Write(t.IPv6Dst[:])
	_, _ = h.Write(t.IPv6Src[:])
	var rest [8 + 2 + 1 + 1 + 2 + 2 + 2 + 1 + 1]byte
	binary.BigEndian.PutUint64(rest[0:8], t.TunID)
	binary.BigEndian.PutUint16(rest[8:10], t.Flags)
	rest[10] = t.IPTOS
	rest[11] = t.IPTTL
	binary.BigEndian.PutUint16(rest[12:14], t.TPSrc)
	binary.BigEndian.PutUint16(rest[14:16], t.TPDst)
	binary.BigEndian.PutUint16(rest[16:18], t.GbpID)
	rest[18] = t.GbpFlags
	_, _ = h.Write(rest[:])
	if size > effectiveHeaderLen && t.Metadata != nil {
		_, _ = h.Write(t.Metadata.Opts())
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], basis)
	_, _ = h.Write(b[:])
	return h.Sum32()
}

// Clone returns a deep copy of t, truncated to its effective size:
// fields beyond the effective boundary are left zero-valued, matching
// the invariant that copies must observe effective size.
func (t *FlowTunnel) Clone() *FlowTunnel {
	if t == nil {
		return nil
	}
	c := *t
	size := t.EffectiveSize()
	if size <= srcSlotLen {
		c.TunID, c.Flags, c.IPTOS, c.IPTTL = 0, 0, 0, 0
		c.TPSrc, c.TPDst, c.GbpID, c.GbpFlags = 0, 0, 0, 0
		c.Metadata = nil
		return &c
	}
	if size <= effectiveHeaderLen {
		c.Metadata = nil
		return &c
	}
	c.Metadata = t.Metadata.Clone()
	return &c
}
