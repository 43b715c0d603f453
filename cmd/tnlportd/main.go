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

// Command tnlportd hosts the tunnel-port registry as a standalone
// process: it discovers configured tunnel netdevs, registers them,
// and optionally serves Prometheus metrics, leaving the actual
// packet I/O to the external classifier/datapath this core assumes.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	nlp "github.com/vishvananda/netlink"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loxilb-io/tnlport/pkg/metrics"
	"github.com/loxilb-io/tnlport/pkg/netdev"
	"github.com/loxilb-io/tnlport/pkg/tnlport"
	tk "github.com/loxilb-io/loxilib"
)

var version = "0.1.0"

func registerLinks(reg *tnlport.Registry, names string) {
	for i, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		link, err := nlp.LinkByName(name)
		if err != nil {
			tk.LogIt(tk.LogError, "tnlportd: link %s not found: %v\n", name, err)
			continue
		}
		dev := netdev.NewFromLink(link)
		if err := reg.Add(name, dev, uint32(i), false, name); err != nil {
			tk.LogIt(tk.LogError, "tnlportd: add %s failed: %v\n", name, err)
		}
	}
	metrics.SetRegisteredPorts(reg.Len())
}

func main() {
	if _, err := flags.Parse(&Opts); err != nil {
		os.Exit(1)
	}

	if Opts.Version {
		fmt.Printf("tnlportd version: %s\n", version)
		os.Exit(0)
	}

	logfile := fmt.Sprintf("/var/log/tnlportd%s.log", os.Getenv("HOSTNAME"))
	logLevel := tk.LogInfo
	switch Opts.LogLevel {
	case "debug":
		logLevel = tk.LogDebug
	case "notice":
		logLevel = tk.LogNotice
	case "error", "warning":
		logLevel = tk.LogError
	case "critical":
		logLevel = tk.LogCritical
	case "emergency", "alert":
		logLevel = tk.LogEmerg
	}
	tk.LogItInit(logfile, logLevel, true)
	tk.LogIt(tk.LogInfo, "tnlportd starting, loglevel=%s\n", Opts.LogLevel)

	reg := tnlport.NewRegistry()
	if Opts.Links != "" {
		registerLinks(reg, Opts.Links)
	}

	if Opts.Prometheus {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(Opts.MetricsAddr, mux); err != nil {
				tk.LogIt(tk.LogError, "tnlportd: metrics server: %v\n", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	tk.LogIt(tk.LogInfo, "tnlportd shutting down\n")
}
