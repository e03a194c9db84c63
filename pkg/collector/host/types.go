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

package host

import (
	"github.com/NVIDIA/systracker/pkg/measurement"
)

// CPUStats is a CPU utilization sample.
type CPUStats struct {
	Percent float64 `json:"percent" yaml:"percent"`
	Cores   int     `json:"cores" yaml:"cores"`
}

// MemoryStats is a virtual memory sample. Sizes are bytes.
type MemoryStats struct {
	Total     uint64  `json:"total" yaml:"total"`
	Available uint64  `json:"available" yaml:"available"`
	Used      uint64  `json:"used" yaml:"used"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

// DiskStats is filesystem usage for one mount point. Sizes are bytes.
type DiskStats struct {
	Path    string  `json:"path" yaml:"path"`
	Total   uint64  `json:"total" yaml:"total"`
	Used    uint64  `json:"used" yaml:"used"`
	Free    uint64  `json:"free" yaml:"free"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// NetworkStats are cumulative counters summed across all interfaces.
type NetworkStats struct {
	BytesSent   uint64 `json:"bytes_sent" yaml:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv" yaml:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent" yaml:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv" yaml:"packets_recv"`
}

// Measurement converts the sample to a measurement with a single "usage" subtype.
func (s CPUStats) Measurement() *measurement.Measurement {
	return measurement.NewMeasurement(measurement.TypeCPU).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder(measurement.SubtypeUsage).
			SetFloat64(measurement.KeyPercent, s.Percent).
			SetInt(measurement.KeyCores, s.Cores)).
		Build()
}

// Measurement converts the sample to a measurement with a single "usage" subtype.
func (s MemoryStats) Measurement() *measurement.Measurement {
	return measurement.NewMeasurement(measurement.TypeMemory).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder(measurement.SubtypeUsage).
			SetUint64(measurement.KeyTotal, s.Total).
			SetUint64(measurement.KeyAvailable, s.Available).
			SetUint64(measurement.KeyUsed, s.Used).
			SetFloat64(measurement.KeyPercent, s.Percent)).
		Build()
}

// Measurement converts the sample to a measurement with a single "usage" subtype.
func (s DiskStats) Measurement() *measurement.Measurement {
	return measurement.NewMeasurement(measurement.TypeDisk).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder(measurement.SubtypeUsage).
			SetString(measurement.KeyPath, s.Path).
			SetUint64(measurement.KeyTotal, s.Total).
			SetUint64(measurement.KeyUsed, s.Used).
			SetUint64(measurement.KeyFree, s.Free).
			SetFloat64(measurement.KeyPercent, s.Percent)).
		Build()
}

// Measurement converts the sample to a measurement with a single "usage" subtype.
func (s NetworkStats) Measurement() *measurement.Measurement {
	return measurement.NewMeasurement(measurement.TypeNetwork).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder(measurement.SubtypeUsage).
			SetUint64(measurement.KeyBytesSent, s.BytesSent).
			SetUint64(measurement.KeyBytesRecv, s.BytesRecv).
			SetUint64(measurement.KeyPacketsSent, s.PacketsSent).
			SetUint64(measurement.KeyPacketsRecv, s.PacketsRecv)).
		Build()
}
