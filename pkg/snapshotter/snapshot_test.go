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
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/systracker/pkg/collector"
	"github.com/NVIDIA/systracker/pkg/collector/host"
	"github.com/NVIDIA/systracker/pkg/collector/process"
	"github.com/NVIDIA/systracker/pkg/collector/sensors"
	"github.com/NVIDIA/systracker/pkg/config"
	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/header"
	"github.com/NVIDIA/systracker/pkg/measurement"
	"github.com/NVIDIA/systracker/pkg/serializer"
)

type collectorFunc func(ctx context.Context) (*measurement.Measurement, error)

func (f collectorFunc) Collect(ctx context.Context) (*measurement.Measurement, error) { return f(ctx) }

func static(m *measurement.Measurement) collector.Collector {
	return collectorFunc(func(context.Context) (*measurement.Measurement, error) { return m, nil })
}

// ctxAware fails with the context error the way the host collectors do.
func ctxAware(m *measurement.Measurement) collector.Collector {
	return collectorFunc(func(ctx context.Context) (*measurement.Measurement, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type fakeFactory struct {
	collectors map[measurement.Type]collector.Collector
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{collectors: map[measurement.Type]collector.Collector{
		measurement.TypeCPU:     static(host.CPUStats{Percent: 91, Cores: 4}.Measurement()),
		measurement.TypeMemory:  static(host.MemoryStats{Total: 8 * gib, Used: 2 * gib, Available: 6 * gib, Percent: 25}.Measurement()),
		measurement.TypeDisk:    static(host.DiskStats{Path: "/", Total: 100 * gib, Used: 50 * gib, Free: 50 * gib, Percent: 50}.Measurement()),
		measurement.TypeNetwork: static(host.NetworkStats{BytesSent: 3 * mib, BytesRecv: 5 * mib, PacketsSent: 1234, PacketsRecv: 5678}.Measurement()),
		measurement.TypeProcess: static(process.ToMeasurement([]process.Info{
			{PID: 42, Name: "busy", CPUPercent: ptr.To(12.5)},
		}, 100)),
		measurement.TypeTemperature: static(sensors.Temperatures{}.Measurement()),
	}}
}

func (f *fakeFactory) CreateCPUCollector() collector.Collector     { return f.collectors[measurement.TypeCPU] }
func (f *fakeFactory) CreateMemoryCollector() collector.Collector  { return f.collectors[measurement.TypeMemory] }
func (f *fakeFactory) CreateDiskCollector() collector.Collector    { return f.collectors[measurement.TypeDisk] }
func (f *fakeFactory) CreateNetworkCollector() collector.Collector { return f.collectors[measurement.TypeNetwork] }
func (f *fakeFactory) CreateProcessCollector() collector.Collector { return f.collectors[measurement.TypeProcess] }
func (f *fakeFactory) CreateTemperatureCollector() collector.Collector {
	return f.collectors[measurement.TypeTemperature]
}

type recorder struct {
	mu     sync.Mutex
	stats  []string
	alerts []string
	errors []string
}

func (r *recorder) Stats(kind, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = append(r.stats, kind)
}

func (r *recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

var fixedTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func newTestMonitor(f *fakeFactory, cfg *config.Store) (*Monitor, *bytes.Buffer, *recorder) {
	var out bytes.Buffer
	events := &recorder{}
	return &Monitor{
		Version: "v1.0.0",
		Config:  cfg,
		Factory: f,
		Events:  events,
		Out:     &out,
		Now:     func() time.Time { return fixedTime },
	}, &out, events
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot()
	require.NotNil(t, snap)
	assert.NotNil(t, snap.Measurements)
	assert.Empty(t, snap.Measurements)
	assert.Nil(t, snap.Get(measurement.TypeCPU))
}

func TestMonitor_Snapshot(t *testing.T) {
	t.Setenv(EnvHostname, "worker-1")
	m, out, events := newTestMonitor(newFakeFactory(), config.Default())

	snap, err := m.Snapshot(context.Background())
	require.NoError(t, err)

	types := make([]measurement.Type, 0, len(snap.Measurements))
	for _, meas := range snap.Measurements {
		types = append(types, meas.Type)
	}
	assert.Equal(t, measurement.Types, types)

	assert.Equal(t, header.KindSnapshot, snap.Kind)
	assert.Equal(t, APIVersion, snap.APIVersion)
	assert.Equal(t, "worker-1", snap.Metadata[header.KeyHost])
	assert.Equal(t, "v1.0.0", snap.Metadata[header.KeyVersion])
	assert.Equal(t, m.Session(), snap.Metadata[header.KeySession])
	assert.Equal(t, fixedTime.UTC().Format(time.RFC3339), snap.Metadata[header.KeyTimestamp])

	text := out.String()
	for _, want := range []string{
		banner,
		"System Tracker - 2025-01-15 10:30:00",
		"CPU Usage: 91.00%",
		"Memory: 25.00% (2.00GB / 8.00GB)",
		"Disk: 50.00% (50.00GB / 100.00GB)",
		"Network: Sent 3.00MB | Recv 5.00MB",
		"Packets: Sent 1,234 | Recv 5,678",
		fmt.Sprintf("%-10d%-30s%-10s%-10s", 42, "busy", "12.50", "N/A"),
		"Total Processes: 100",
		"Temperature sensors not available on this system",
		"⚠️  ALERT: CPU usage is 91.00% (threshold: 80.00%)",
	} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, strings.Index(text, "CPU Usage"), strings.Index(text, "ALERT"))
	assert.Less(t, strings.Index(text, "ALERT"), strings.Index(text, "Memory:"))

	assert.Equal(t, []string{"CPU", "Memory", "Disk", "Network", "Process", "Temperature"}, events.stats)
	assert.Equal(t, []string{"CPU: CPU usage is 91.00% (threshold: 80.00%)"}, events.alerts)
	assert.Empty(t, events.errors)

	history := m.History()
	require.Len(t, history, 1)
	assert.Equal(t, 91.0, history[0].Value)
}

func TestMonitor_Snapshot_DisplayFlags(t *testing.T) {
	cfg := config.Default(
		config.WithValue(config.KeyShowNetwork, false),
		config.WithValue(config.KeyShowProcesses, false),
	)
	m, out, events := newTestMonitor(newFakeFactory(), cfg)

	snap, err := m.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Nil(t, snap.Get(measurement.TypeNetwork))
	assert.Nil(t, snap.Get(measurement.TypeProcess))
	assert.NotNil(t, snap.Get(measurement.TypeTemperature))
	assert.NotContains(t, out.String(), "Network:")
	assert.NotContains(t, out.String(), "Top Processes")
	assert.Equal(t, []string{"CPU", "Memory", "Disk", "Temperature"}, events.stats)
}

func TestMonitor_Snapshot_FailureIsolated(t *testing.T) {
	f := newFakeFactory()
	f.collectors[measurement.TypeMemory] = collectorFunc(func(context.Context) (*measurement.Measurement, error) {
		return nil, stderrors.New("boom")
	})
	m, out, events := newTestMonitor(f, config.Default())

	snap, err := m.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Nil(t, snap.Get(measurement.TypeMemory))
	assert.NotNil(t, snap.Get(measurement.TypeDisk))
	assert.Contains(t, out.String(), "Disk: 50.00%")
	assert.Equal(t, []string{"failed to collect memory: boom"}, events.errors)
}

func TestMonitor_Snapshot_Temperatures(t *testing.T) {
	f := newFakeFactory()
	f.collectors[measurement.TypeTemperature] = static(sensors.Temperatures{
		Available: true,
		Groups: map[string][]sensors.Reading{
			"coretemp": {{Label: "core_0", Current: ptr.To(45.0), Critical: ptr.To(100.0)}},
		},
	}.Measurement())
	m, out, _ := newTestMonitor(f, config.Default())

	_, err := m.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "System Temperatures:")
	assert.Contains(t, out.String(), fmt.Sprintf("%-30s%-15s%-15s%-15s", "core_0", "45.0°C", "N/A", "100.0°C"))
}

func TestMonitor_Snapshot_Serializer(t *testing.T) {
	t.Setenv(EnvHostname, "worker-1")
	var buf bytes.Buffer
	m, _, _ := newTestMonitor(newFakeFactory(), config.Default())
	m.Serializer = serializer.NewWriter(serializer.FormatJSON, &buf)

	_, err := m.Snapshot(context.Background())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Snapshot", doc["kind"])
	assert.Equal(t, "worker-1", doc["metadata"].(map[string]any)["host"])
	assert.Len(t, doc["measurements"], len(measurement.Types))
}

func TestMonitor_Snapshot_CancelDuringCPU(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFakeFactory()
	f.collectors[measurement.TypeCPU] = collectorFunc(func(context.Context) (*measurement.Measurement, error) {
		cancel()
		return host.CPUStats{Percent: 91, Cores: 4}.Measurement(), nil
	})
	f.collectors[measurement.TypeMemory] = ctxAware(host.MemoryStats{Total: 8 * gib, Percent: 90}.Measurement())
	f.collectors[measurement.TypeDisk] = ctxAware(host.DiskStats{Path: "/", Total: 100 * gib, Percent: 95}.Measurement())
	f.collectors[measurement.TypeNetwork] = ctxAware(host.NetworkStats{}.Measurement())
	m, _, events := newTestMonitor(f, config.Default())

	snap, err := m.Snapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, snap.Measurements, len(measurement.Types))
	assert.Empty(t, events.errors)
	assert.Len(t, m.History(), 3, "cpu, memory and disk all checked")
}

func TestMonitor_Snapshot_DeadlineStillApplies(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	f := newFakeFactory()
	f.collectors[measurement.TypeDisk] = ctxAware(host.DiskStats{Path: "/", Percent: 95}.Measurement())
	m, _, events := newTestMonitor(f, config.Default())

	snap, err := m.Snapshot(ctx)
	require.NoError(t, err)

	assert.Nil(t, snap.Get(measurement.TypeDisk))
	require.Len(t, events.errors, 1)
	assert.Contains(t, events.errors[0], "failed to collect disk: [TIMEOUT] disk collection timed out")
}

func TestMonitor_Run_CancelDuringFirstCycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cycles := 0
	var cycleCtxErr error
	f := newFakeFactory()
	f.collectors[measurement.TypeCPU] = collectorFunc(func(cctx context.Context) (*measurement.Measurement, error) {
		cycles++
		cancel()
		cycleCtxErr = cctx.Err()
		return host.CPUStats{Percent: 10}.Measurement(), nil
	})
	m, out, events := newTestMonitor(f, config.Default())

	require.NoError(t, m.Run(ctx, 0))

	assert.Equal(t, 1, cycles)
	assert.NoError(t, cycleCtxErr, "cycle context must survive cancellation")
	assert.Len(t, events.stats, len(measurement.Types), "the interrupted cycle completes")
	assert.True(t, strings.HasSuffix(out.String(), "\nMonitoring stopped.\n"))
}

func TestMonitor_Run_StopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cycles := 0
	f := newFakeFactory()
	f.collectors[measurement.TypeCPU] = collectorFunc(func(context.Context) (*measurement.Measurement, error) {
		cycles++
		if cycles == 3 {
			cancel()
		}
		return host.CPUStats{Percent: 10}.Measurement(), nil
	})
	m, _, _ := newTestMonitor(f, config.Default())

	require.NoError(t, m.Run(ctx, time.Millisecond))
	assert.Equal(t, 3, cycles)
}

func TestMonitor_Run_AlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, out, _ := newTestMonitor(newFakeFactory(), config.Default())
	require.NoError(t, m.Run(ctx, time.Hour))
	assert.Equal(t, 1, strings.Count(out.String(), "System Tracker - "))
}

func TestMonitor_Samples(t *testing.T) {
	m, _, _ := newTestMonitor(newFakeFactory(), config.Default())

	snaps, err := m.Samples(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	for _, s := range snaps {
		assert.Equal(t, m.Session(), s.Metadata[header.KeySession])
	}
	assert.Len(t, m.History(), 3)

	_, err = m.Samples(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestMonitor_Samples_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFakeFactory()
	f.collectors[measurement.TypeCPU] = collectorFunc(func(context.Context) (*measurement.Measurement, error) {
		cancel()
		return host.CPUStats{Percent: 10}.Measurement(), nil
	})
	m, _, _ := newTestMonitor(f, config.Default())

	snaps, err := m.Samples(ctx, 5, time.Hour)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestSnapshot_Record(t *testing.T) {
	t.Setenv(EnvHostname, "worker-1")
	cfg := config.Default(
		config.WithValue(config.KeyShowProcesses, false),
		config.WithValue(config.KeyShowTemperatures, false),
	)
	m, _, _ := newTestMonitor(newFakeFactory(), cfg)

	snap, err := m.Snapshot(context.Background())
	require.NoError(t, err)

	rec := snap.Record()
	assert.Equal(t, []string{
		FieldTimestamp, FieldHost,
		"cpu_cores", "cpu_percent",
		"memory_available", "memory_percent", "memory_total", "memory_used",
		"disk_free", "disk_path", "disk_percent", "disk_total", "disk_used",
		"network_bytes_recv", "network_bytes_sent", "network_packets_recv", "network_packets_sent",
	}, rec.Names())

	name, _ := rec.Get(FieldHost)
	assert.Equal(t, "worker-1", name)
	pct, _ := rec.Get("cpu_percent")
	assert.Equal(t, 91.0, pct)

	filtered := snap.Record("cpu_*", "*_percent")
	assert.Equal(t, []string{
		FieldTimestamp, FieldHost, "cpu_cores", "cpu_percent", "memory_percent", "disk_percent",
	}, filtered.Names())
}

func TestSnapshot_Record_Summary(t *testing.T) {
	snap := NewSnapshot()
	snap.InitAt(header.KindSnapshot, APIVersion, "", fixedTime)
	snap.Measurements = append(snap.Measurements,
		process.ToMeasurement(nil, 7),
		sensors.Temperatures{}.Measurement(),
	)

	rec := snap.Record()
	assert.Equal(t, []string{FieldTimestamp, FieldHost, "process_count", "temperature_supported"}, rec.Names())

	records := Records([]*Snapshot{snap, snap}, "process_*")
	require.Len(t, records, 2)
	assert.Equal(t, []string{FieldTimestamp, FieldHost, "process_count"}, records[1].Names())
}

func TestHostname(t *testing.T) {
	t.Setenv(EnvHostname, "override")
	assert.Equal(t, "override", Hostname())

	t.Setenv(EnvHostname, "")
	assert.NotEmpty(t, Hostname())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		m    *measurement.Measurement
		want string
	}{
		{"cpu", host.CPUStats{Percent: 12.346, Cores: 4}.Measurement(), "12.35%"},
		{"memory", host.MemoryStats{Percent: 50}.Measurement(), "50.00%"},
		{"network", host.NetworkStats{BytesSent: 10, BytesRecv: 20}.Measurement(), "Sent: 10 Recv: 20"},
		{"processes", process.ToMeasurement([]process.Info{{PID: 1}, {PID: 2}}, 3), "3 processes, top 2"},
		{"no sensors", sensors.Temperatures{}.Measurement(), "unavailable"},
		{"sensors", sensors.Temperatures{Available: true, Groups: map[string][]sensors.Reading{
			"acpitz": {{Label: "acpitz"}}, "coretemp": {{Label: "core_0"}, {Label: "core_1"}},
		}}.Measurement(), "3 sensors"},
		{"empty", measurement.NewMeasurement(measurement.TypeCPU).Build(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.m))
		})
	}
}

func TestMonitor_Samples_LargeCount(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, _, _ := newTestMonitor(newFakeFactory(), config.Default())

	snaps, err := m.Samples(ctx, math.MaxInt, 0)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}
