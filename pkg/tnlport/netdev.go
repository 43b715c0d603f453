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
	"github.com/loxilb-io/tnlport/common"
	"github.com/loxilb-io/tnlport/pkg/packet"
)

// NetdevProvider is the netdev collaborator the registry consumes: an
// opaque source of tunnel configuration, a change-detection sequence
// number, and a protocol-specific header finalizer. The registry
// never inspects which tunnel protocol a NetdevProvider implements;
// that knowledge lives entirely behind BuildTunnelHeader.
type NetdevProvider interface {
	// TunnelConfig returns the netdev's current tunnel configuration.
	// ok is false if this netdev carries no tunnel configuration at
	// all (a plain, non-tunnel port).
	TunnelConfig() (cfg common.TunnelConfig, ok bool)

	// ChangeSeq returns a monotonically increasing counter that
	// advances whenever the netdev's configuration changes.
	ChangeSeq() uint64

	// Name is the netdev's display name, used in duplicate-match
	// warnings and native-tunnel registration.
	Name() string

	// Type identifies the tunnel protocol, e.g. "vxlan" or "gre".
	Type() string

	// BuildTunnelHeader appends this netdev's protocol-specific L4
	// and tunnel bytes to buf (which already carries the outer
	// Ethernet+IPv4 prefix written by BuildHeader), returning the
	// total number of bytes written to buf.
	BuildTunnelHeader(buf []byte, flow *packet.FlowTunnel) (n int, err error)
}

// PortHandle is the opaque, identity-compared token the upper layer
// uses to name a tunnel port (OVS's ofport). Any comparable value
// works; the registry never dereferences it.
type PortHandle any
