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
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/systracker/pkg/collector/process"
	"github.com/NVIDIA/systracker/pkg/collector/sensors"
	"github.com/NVIDIA/systracker/pkg/measurement"
)

const (
	gib = 1 << 30
	mib = 1 << 20
)

var (
	banner  = strings.Repeat("=", 50)
	printer = message.NewPrinter(language.English)
)

// render writes the console block for one measurement.
func render(w io.Writer, m *measurement.Measurement) {
	switch m.Type {
	case measurement.TypeCPU:
		st := primary(m)
		fmt.Fprintf(w, "CPU Usage: %.2f%%\n", float(st, measurement.KeyPercent))
	case measurement.TypeMemory, measurement.TypeDisk:
		st := primary(m)
		fmt.Fprintf(w, "%s: %.2f%% (%.2fGB / %.2fGB)\n", m.Type,
			float(st, measurement.KeyPercent),
			float64(unsigned(st, measurement.KeyUsed))/gib,
			float64(unsigned(st, measurement.KeyTotal))/gib)
	case measurement.TypeNetwork:
		st := primary(m)
		fmt.Fprintf(w, "Network: Sent %.2fMB | Recv %.2fMB\n",
			float64(unsigned(st, measurement.KeyBytesSent))/mib,
			float64(unsigned(st, measurement.KeyBytesRecv))/mib)
		printer.Fprintf(w, "Packets: Sent %d | Recv %d\n",
			unsigned(st, measurement.KeyPacketsSent),
			unsigned(st, measurement.KeyPacketsRecv))
	case measurement.TypeProcess:
		renderProcesses(w, m)
	case measurement.TypeTemperature:
		renderTemperatures(w, sensors.FromMeasurement(m))
	}
}

func renderProcesses(w io.Writer, m *measurement.Measurement) {
	fmt.Fprintln(w, "\nTop Processes by CPU Usage:")
	fmt.Fprintf(w, "%-10s%-30s%-10s%-10s\n", "PID", "Name", "CPU%", "Memory%")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for i := range m.Subtypes {
		st := &m.Subtypes[i]
		if !strings.HasPrefix(st.Name, process.SubtypeTopPrefix) {
			continue
		}
		pid, _ := st.GetInt64(measurement.KeyPID)
		name, _ := st.GetString(measurement.KeyName)
		fmt.Fprintf(w, "%-10d%-30s%-10s%-10s\n", pid, name,
			process.FormatPercent(optional(st, measurement.KeyCPUPercent)),
			process.FormatPercent(optional(st, measurement.KeyMemoryPercent)))
	}

	var count int64
	if st := m.GetSubtype(measurement.SubtypeSummary); st != nil {
		count, _ = st.GetInt64(measurement.KeyCount)
	}
	printer.Fprintf(w, "\nTotal Processes: %d\n", count)
}

func renderTemperatures(w io.Writer, t sensors.Temperatures) {
	if !t.Available {
		fmt.Fprintln(w, "\nTemperature sensors not available on this system")
		return
	}

	fmt.Fprintln(w, "\nSystem Temperatures:")
	fmt.Fprintf(w, "%-30s%-15s%-15s%-15s\n", "Sensor", "Current", "High", "Critical")
	fmt.Fprintln(w, strings.Repeat("-", 75))

	for _, group := range t.GroupNames() {
		for _, r := range t.Groups[group] {
			fmt.Fprintf(w, "%-30s%-15s%-15s%-15s\n", r.Label,
				sensors.FormatCelsius(r.Current),
				sensors.FormatCelsius(r.High),
				sensors.FormatCelsius(r.Critical))
		}
	}
}

// describe renders the stats event payload for a measurement.
func describe(m *measurement.Measurement) string {
	st := primary(m)
	if st == nil {
		return ""
	}

	switch m.Type {
	case measurement.TypeCPU, measurement.TypeMemory, measurement.TypeDisk:
		return fmt.Sprintf("%.2f%%", float(st, measurement.KeyPercent))
	case measurement.TypeNetwork:
		return fmt.Sprintf("Sent: %d Recv: %d",
			unsigned(st, measurement.KeyBytesSent), unsigned(st, measurement.KeyBytesRecv))
	case measurement.TypeProcess:
		count, _ := st.GetInt64(measurement.KeyCount)
		return fmt.Sprintf("%d processes, top %d", count, len(m.Subtypes)-1)
	case measurement.TypeTemperature:
		t := sensors.FromMeasurement(m)
		if !t.Available {
			return "unavailable"
		}
		n := 0
		for _, readings := range t.Groups {
			n += len(readings)
		}
		return fmt.Sprintf("%d sensors", n)
	}
	return ""
}

// primary returns the "usage" subtype, or "summary" for measurements without one.
func primary(m *measurement.Measurement) *measurement.Subtype {
	if st := m.GetSubtype(measurement.SubtypeUsage); st != nil {
		return st
	}
	return m.GetSubtype(measurement.SubtypeSummary)
}

func float(st *measurement.Subtype, key string) float64 {
	if st == nil {
		return 0
	}
	v, _ := st.GetFloat64(key)
	return v
}

func unsigned(st *measurement.Subtype, key string) uint64 {
	if st == nil {
		return 0
	}
	v, _ := st.GetUint64(key)
	return v
}

func optional(st *measurement.Subtype, key string) *float64 {
	v, err := st.GetFloat64(key)
	if err != nil {
		return nil
	}
	return ptr.To(v)
}
