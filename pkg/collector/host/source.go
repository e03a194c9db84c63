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
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// Source reads raw host statistics from the platform.
type Source interface {
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	CPUCores(ctx context.Context) (int, error)
	Memory(ctx context.Context) (MemoryStats, error)
	Disk(ctx context.Context, path string) (DiskStats, error)
	Network(ctx context.Context) (NetworkStats, error)
}

// PlatformSource is the gopsutil backed Source.
type PlatformSource struct{}

// CPUPercent blocks for window and returns overall utilization across all CPUs.
func (PlatformSource) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read CPU percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("no CPU percent reported")
	}
	return pcts[0], nil
}

// CPUCores returns the number of logical CPUs.
func (PlatformSource) CPUCores(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("failed to count CPUs: %w", err)
	}
	return n, nil
}

// Memory returns virtual memory usage.
func (PlatformSource) Memory(ctx context.Context) (MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}, fmt.Errorf("failed to read virtual memory: %w", err)
	}
	return MemoryStats{
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
		Percent:   vm.UsedPercent,
	}, nil
}

// Disk returns filesystem usage for the mount containing path.
func (PlatformSource) Disk(ctx context.Context, path string) (DiskStats, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DiskStats{}, fmt.Errorf("failed to read disk usage for %s: %w", path, err)
	}
	return DiskStats{
		Path:    path,
		Total:   u.Total,
		Used:    u.Used,
		Free:    u.Free,
		Percent: u.UsedPercent,
	}, nil
}

// Network returns I/O counters summed over all interfaces.
func (PlatformSource) Network(ctx context.Context) (NetworkStats, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetworkStats{}, fmt.Errorf("failed to read network counters: %w", err)
	}

	var s NetworkStats
	for _, c := range counters {
		s.BytesSent += c.BytesSent
		s.BytesRecv += c.BytesRecv
		s.PacketsSent += c.PacketsSent
		s.PacketsRecv += c.PacketsRecv
	}
	return s, nil
}
