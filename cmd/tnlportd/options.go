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

package main

// Opts holds the daemon's command-line configuration.
var Opts struct {
	Version     bool   `short:"v" long:"version" description:"Show tnlportd version"`
	Prometheus  bool   `short:"p" long:"prometheus" description:"Run prometheus metrics HTTP endpoint"`
	MetricsAddr string `long:"metrics-addr" description:"Address to serve /metrics on" default:"127.0.0.1:9101" env:"METRICS_ADDR"`
	LogLevel    string `long:"loglevel" description:"One of debug,info,notice,error,critical,emergency" default:"info"`
	Links       string `long:"links" description:"Comma-separated list of tunnel netdev names to register on startup" default:""`
}
