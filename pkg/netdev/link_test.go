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

package netdev

import (
	"testing"

	cmn "github.com/loxilb-io/tnlport/common"
)

func TestRefreshBumpsChangeSeqOnlyOnDiff(t *testing.T) {
	d := &LinkTunnelDev{typ: "vxlan"}
	before := d.ChangeSeq()

	d.Refresh(cmn.TunnelConfig{})
	if d.ChangeSeq() != before {
		t.Fatalf("Refresh with identical config bumped change_seq")
	}

	d.Refresh(cmn.TunnelConfig{InKey: 42})
	if d.ChangeSeq() == before {
		t.Fatalf("Refresh with changed config did not bump change_seq")
	}
}

func TestBuildTunnelHeaderRejectsShortBuffer(t *testing.T) {
	d := &LinkTunnelDev{typ: "vxlan"}
	buf := make([]byte, 10)
	if _, err := d.BuildTunnelHeader(buf, nil); err == nil {
		t.Fatalf("expected error for undersized buffer")
	}
}
