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

// Package common holds the types shared between the tunnel-port core
// and its netdev/native-tunnel collaborators, kept separate so those
// collaborators don't need to import the core itself.
package common

import "github.com/loxilb-io/tnlport/pkg/packet"

// TunnelConfig is the tunnel-configuration record a netdev
// collaborator hands back to the registry on Add/Reconfigure.
type TunnelConfig struct {
	InKey     uint64
	Ipv6Src   packet.IPv6Addr
	Ipv6Dst   packet.IPv6Addr
	IPSrcFlow bool
	IPDstFlow bool
	InKeyFlow bool

	OutKey        uint64
	OutKeyFlow    bool
	OutKeyPresent bool

	IPSec bool

	TTL        uint8
	TTLInherit bool

	TOS        uint8
	TOSInherit bool

	DontFragment bool
	Csum         bool

	DstPort uint16
}

// NativeTunnelSink is the side-table collaborator a native (userspace
// terminated) tunnel port registers itself with, so a datapath port
// number and outer transport port can be mapped back to a port name.
type NativeTunnelSink interface {
	Insert(odpPort uint32, dstPort uint16, name string)
	Delete(dstPort uint16)
}
