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

import "testing"

func TestIPv4HeaderChecksumVerifies(t *testing.T) {
	hdr := IPv4Header{
		IHLVersion: IPIHLVer(5, 4),
		TotalLen:   84,
		TTL:        64,
		Proto:      17,
	}
	hdr.Src.Put(0x0a000001)
	hdr.Dst.Put(0x0a000002)

	buf := make([]byte, IPv4HeaderLen)
	PutIPv4Header(buf, hdr)

	if !VerifyChecksum(buf) {
		t.Fatalf("outer IPv4 header checksum did not fold to zero")
	}
}

func TestCIDRPredicate(t *testing.T) {
	cases := []struct {
		mask uint32
		cidr bool
	}{
		{0xffffffff, true},
		{0xfffffffe, true},
		{0xffffff00, true},
		{0x00000000, true},
		{0xffff00ff, false},
		{0x0000ffff, false},
	}
	for _, c := range cases {
		if got := IsCIDR(c.mask); got != c.cidr {
			t.Errorf("IsCIDR(%#08x) = %v, want %v", c.mask, got, c.cidr)
		}
	}
}
