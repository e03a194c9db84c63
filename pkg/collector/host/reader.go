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
	"log/slog"
	"time"

	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/logging"
)

// Reader samples CPU, memory, disk and network statistics.
//
// Read failures never reach the caller: they are reported as error events
// and the zero record is returned so a display loop keeps running.
type Reader struct {
	source   Source
	events   logging.Events
	diskPath string
	window   time.Duration
}

// Option configures a Reader.
type Option func(*Reader)

// WithSource replaces the platform source.
func WithSource(s Source) Option {
	return func(r *Reader) {
		r.source = s
	}
}

// WithEvents sets the sink for read failures.
func WithEvents(e logging.Events) Option {
	return func(r *Reader) {
		if e != nil {
			r.events = e
		}
	}
}

// WithDiskPath sets the mount point reported by Disk.
func WithDiskPath(path string) Option {
	return func(r *Reader) {
		if path != "" {
			r.diskPath = path
		}
	}
}

// WithSampleWindow sets how long CPU blocks to compute a percentage.
func WithSampleWindow(d time.Duration) Option {
	return func(r *Reader) {
		r.window = d
	}
}

// NewReader returns a Reader backed by gopsutil unless overridden.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		source:   PlatformSource{},
		events:   logging.Discard,
		diskPath: defaults.DiskPath,
		window:   defaults.CPUSampleInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DiskPath returns the mount point reported by Disk.
func (r *Reader) DiskPath() string {
	return r.diskPath
}

// CPU blocks for the sampling window and returns utilization and core count.
// A failed core count read keeps the utilization and reports zero cores.
func (r *Reader) CPU(ctx context.Context) CPUStats {
	pct, err := r.source.CPUPercent(ctx, r.window)
	if err != nil {
		r.fail("CPU", err)
		return CPUStats{}
	}
	cores, err := r.source.CPUCores(ctx)
	if err != nil {
		r.fail("CPU core", err)
		return CPUStats{Percent: pct}
	}
	return CPUStats{Percent: pct, Cores: cores}
}

// Memory returns virtual memory usage.
func (r *Reader) Memory(ctx context.Context) MemoryStats {
	s, err := r.source.Memory(ctx)
	if err != nil {
		r.fail("Memory", err)
		return MemoryStats{}
	}
	return s
}

// Disk returns usage of the configured mount point.
func (r *Reader) Disk(ctx context.Context) DiskStats {
	s, err := r.source.Disk(ctx, r.diskPath)
	if err != nil {
		r.fail("Disk", err)
		return DiskStats{}
	}
	return s
}

// Network returns cumulative interface counters.
func (r *Reader) Network(ctx context.Context) NetworkStats {
	s, err := r.source.Network(ctx)
	if err != nil {
		r.fail("Network", err)
		return NetworkStats{}
	}
	return s
}

func (r *Reader) fail(kind string, err error) {
	slog.Debug("host read failed", "kind", kind, "error", err)
	r.events.Error("failed to read " + kind + " stats: " + err.Error())
}
