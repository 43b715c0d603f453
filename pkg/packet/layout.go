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

import "fmt"

// assertSize is this package's stand-in for OVS's BUILD_ASSERT_DECL:
// every fixed wire-layout record declares its canonical on-wire size
// as a constant and checks it here at package init against the sum of
// field widths written beside the record. The check does not read the
// Go struct's in-memory size (unsafe.Sizeof), which can differ from the
// wire size where field alignment adds padding (SNAPHeader is one such
// record), so a field added to a struct without updating that sum is
// not caught.
func assertSize(name string, declared, wire int) {
	if declared != wire {
		panic(fmt.Sprintf("packet: %s layout size mismatch: declared %d, wire %d", name, declared, wire))
	}
}
