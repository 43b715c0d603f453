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

// Package metrics exposes Prometheus counters and gauges for the
// tunnel-port core's registry size, receive outcomes, ECN drops and
// rejected duplicate adds.
package metrics

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registeredPorts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tnlport_registered_ports",
			Help: "Current number of tunnel ports registered in the index.",
		},
	)
	receiveHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tnlport_receive_hits_total",
			Help: "Total number of Receive calls that matched a registered tunnel port.",
		},
	)
	receiveMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tnlport_receive_misses_total",
			Help: "Total number of Receive calls with no matching tunnel port.",
		},
	)
	ecnDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tnlport_ecn_drops_total",
			Help: "Total number of packets dropped by the ECN receive policy.",
		},
	)
	duplicateAdds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tnlport_duplicate_add_total",
			Help: "Total number of Add calls rejected because the match tuple already existed.",
		},
	)
)

// SetRegisteredPorts records the registry's current port count.
func SetRegisteredPorts(n int) {
	registeredPorts.Set(float64(n))
}

// ObserveReceive records a Receive outcome.
func ObserveReceive(hit bool) {
	if hit {
		receiveHits.Inc()
	} else {
		receiveMisses.Inc()
	}
}

// ObserveECNDrop records an ECN-policy drop.
func ObserveECNDrop() {
	ecnDrops.Inc()
}

// ObserveDuplicateAdd records a rejected duplicate Add.
func ObserveDuplicateAdd() {
	duplicateAdds.Inc()
}

// Snapshot reads back the current counter values via the
// client_model wire representation, the same introspection path
// promhttp itself uses when serving /metrics.
func Snapshot() (receiveHitsTotal, receiveMissesTotal float64, err error) {
	mf := &dto.MetricFamily{}
	if err := writeTo(receiveHits, mf); err != nil {
		return 0, 0, err
	}
	receiveHitsTotal = mf.GetMetric()[0].GetCounter().GetValue()

	mf2 := &dto.MetricFamily{}
	if err := writeTo(receiveMisses, mf2); err != nil {
		return 0, 0, err
	}
	receiveMissesTotal = mf2.GetMetric()[0].GetCounter().GetValue()
	return receiveHitsTotal, receiveMissesTotal, nil
}

func writeTo(c prometheus.Counter, mf *dto.MetricFamily) error {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return err
	}
	mf.Metric = []*dto.Metric{m}
	return nil
}
