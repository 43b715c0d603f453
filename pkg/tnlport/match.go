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

// Package tnlport implements the tunnel-port registry, its
// Cartesian-wildcard lookup index, and the send/receive-path
// mutations that thread outer tunnel state through a flow.
package tnlport

import (
	"fmt"

	"github.com/loxilb-io/tnlport/pkg/packet"
)

// ipSrcKind classifies how a Match's source address participates in
// bucket assignment.
type ipSrcKind int

const (
	// ipSrcCFG means the match carries a concrete configured source
	// address to compare against.
	ipSrcCFG ipSrcKind = iota
	// ipSrcANY means the source address is unset and unconstrained.
	ipSrcANY
	// ipSrcFLOW means the source is deferred entirely to the flow
	// table (IPSrcFlow is true).
	ipSrcFLOW
)

// Match is the registry key for a tunnel port, the Go analogue of
// tnl_match. It is a plain value type with no padding ambiguity: byte
// equality is exactly field equality, which the registry relies on
// for duplicate detection.
type Match struct {
	InKey     uint64
	IPv6Src   packet.IPv6Addr
	IPv6Dst   packet.IPv6Addr
	OdpPort   uint32
	PktMark   uint32
	InKeyFlow bool
	IPSrcFlow bool
	IPDstFlow bool
}

// IPSecMark is the well-known pkt_mark value assigned to
// IPsec-protected tunnels.
const IPSecMark = 1

// srcKind classifies m's source-address field for bucket assignment,
// mirroring the FLOW/CFG/ANY enumeration in the bucket-index formula.
func (m Match) srcKind() ipSrcKind {
	if m.IPSrcFlow {
		return ipSrcFLOW
	}
	if m.IPv6Src.IsSet() {
		return ipSrcCFG
	}
	return ipSrcANY
}

// bucketIndex computes 6*in_key_flow + 3*ip_dst_flow + ip_src_kind(m),
// the partition m belongs to among the registry's 12 match buckets.
func bucketIndex(m Match) int {
	idx := 0
	if m.InKeyFlow {
		idx += 6
	}
	if m.IPDstFlow {
		idx += 3
	}
	idx += int(m.srcKind())
	return idx
}

// numBuckets is 2 (in_key_flow) x 2 (ip_dst_flow) x 3 (ip_src_kind).
const numBuckets = 12

// bucketCoordinates returns the (in_key_flow, ip_dst_flow, ip_src_kind)
// triple that bucket i covers, the inverse of bucketIndex used by the
// resolver to synthesize a probe Match for each bucket in turn.
func bucketCoordinates(i int) (inKeyFlow, ipDstFlow bool, kind ipSrcKind) {
	kind = ipSrcKind(i % 3)
	rest := i / 3
	ipDstFlow = rest%2 == 1
	inKeyFlow = rest/2 == 1
	return
}

// String renders m the way the registry's duplicate-add warning
// formats a conflicting match tuple.
func (m Match) String() string {
	return fmt.Sprintf(
		"in_key=%#x(flow=%v) ipv6_src=%s(flow=%v) ipv6_dst=%s(flow=%v) odp_port=%d pkt_mark=%#x",
		m.InKey, m.InKeyFlow,
		packet.FormatIPv6(m.IPv6Src), m.IPSrcFlow,
		packet.FormatIPv6(m.IPv6Dst), m.IPDstFlow,
		m.OdpPort, m.PktMark,
	)
}

// invariantsHold checks the two structural invariants documented for
// tnl_match: a flow-deferred field's concrete slot must be zero.
func (m Match) invariantsHold() bool {
	if m.IPSrcFlow && m.IPv6Src.IsSet() {
		return false
	}
	if m.InKeyFlow && m.InKey != 0 {
		return false
	}
	return true
}
