// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/systracker/pkg/collector/sensors"
	"github.com/NVIDIA/systracker/pkg/measurement"
)

var (
	// Cycle metrics
	snapshotCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "systracker_snapshot_duration_seconds",
			Help:    "Time taken to complete one snapshot cycle",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)

	snapshotCycleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "systracker_snapshot_total",
			Help: "Total number of snapshot cycles",
		},
		[]string{"status"}, // success or error
	)

	snapshotCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "systracker_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"collector"},
	)

	snapshotCollectorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "systracker_collector_errors_total",
			Help: "Total number of collector failures",
		},
		[]string{"collector"},
	)

	// Last observed values
	usagePercent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "systracker_usage_percent",
			Help: "Last observed utilization of a resource",
		},
		[]string{"resource"}, // cpu, memory, disk
	)

	networkBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "systracker_network_bytes",
			Help: "Cumulative bytes across all interfaces at the last snapshot",
		},
		[]string{"direction"}, // sent or recv
	)

	processCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "systracker_processes",
			Help: "Number of visible processes at the last snapshot",
		},
	)

	temperatureCelsius = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "systracker_temperature_celsius",
			Help: "Last observed sensor temperature",
		},
		[]string{"group", "label"},
	)
)

// observe records the last values of a measurement in the gauges.
func observe(m *measurement.Measurement) {
	switch m.Type {
	case measurement.TypeCPU:
		usagePercent.WithLabelValues("cpu").Set(float(primary(m), measurement.KeyPercent))
	case measurement.TypeMemory:
		usagePercent.WithLabelValues("memory").Set(float(primary(m), measurement.KeyPercent))
	case measurement.TypeDisk:
		usagePercent.WithLabelValues("disk").Set(float(primary(m), measurement.KeyPercent))
	case measurement.TypeNetwork:
		st := primary(m)
		networkBytes.WithLabelValues("sent").Set(float64(unsigned(st, measurement.KeyBytesSent)))
		networkBytes.WithLabelValues("recv").Set(float64(unsigned(st, measurement.KeyBytesRecv)))
	case measurement.TypeProcess:
		if st := primary(m); st != nil {
			n, _ := st.GetInt64(measurement.KeyCount)
			processCount.Set(float64(n))
		}
	case measurement.TypeTemperature:
		t := sensors.FromMeasurement(m)
		for group, readings := range t.Groups {
			for _, r := range readings {
				if r.Current != nil {
					temperatureCelsius.WithLabelValues(group, r.Label).Set(*r.Current)
				}
			}
		}
	}
}
