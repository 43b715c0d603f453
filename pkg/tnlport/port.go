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

// Port is the registry's record of a single tunnel port, the Go
// analogue of tnl_port. It is uniquely owned by the Registry that
// created it: exactly one entry in the registry's ofports map and one
// entry in the matching bucket's map reference the same *Port.
type Port struct {
	OFPort    PortHandle
	Netdev    NetdevProvider
	ChangeSeq uint64
	Match     Match
	OdpPort   uint32
	Name      string
	NativeTnl bool
}
