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
	"fmt"

	"github.com/loxilb-io/tnlport/pkg/packet"
)

// DescribeFlow renders flow's outer tunnel fields as a one-line string
// for a caller's "no matching tunnel" or ECN-drop log line; nothing in
// this package calls it.
func DescribeFlow(flow *packet.FlowTunnel) string {
	dst := packet.AddrFromV4OrV6(flow.IPDst, flow.IPv6Dst)
	src := packet.AddrFromV4OrV6(flow.IPSrc, flow.IPv6Src)
	return fmt.Sprintf("tun_id=%#x src=%s dst=%s tos=%#02x ttl=%d",
		flow.TunID, packet.FormatIPv6(src), packet.FormatIPv6(dst), flow.IPTOS, flow.IPTTL)
}
