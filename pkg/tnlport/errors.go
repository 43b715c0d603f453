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

import "errors"

// ErrExists is returned by Registry.Add when a port with an identical
// match tuple is already registered.
var ErrExists = errors.New("tnlport: match tuple already registered")

// ErrNoSuchPort is returned when an operation names an ofport handle
// the registry has never seen (or has since forgotten). Del treats
// this as a silent no-op rather than surfacing the error.
var ErrNoSuchPort = errors.New("tnlport: unknown ofport handle")

// ErrNoMatch is the resolver's miss condition: no registered port
// claims the flow presented to Receive.
var ErrNoMatch = errors.New("tnlport: no tunnel port matches flow")
