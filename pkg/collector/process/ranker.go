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

package process

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/logging"
)

// Info describes one process. Percentages the platform could not supply
// are nil.
type Info struct {
	PID           int32    `json:"pid" yaml:"pid"`
	Name          string   `json:"name" yaml:"name"`
	CPUPercent    *float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryPercent *float64 `json:"memory_percent" yaml:"memory_percent"`
}

// FormatPercent renders p with two decimals, or N/A when nil.
func FormatPercent(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *p)
}

// Ranker lists processes ordered by CPU usage.
type Ranker struct {
	source Source
	events logging.Events
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithSource replaces the platform source.
func WithSource(s Source) Option {
	return func(r *Ranker) {
		r.source = s
	}
}

// WithEvents sets the sink for enumeration failures.
func WithEvents(e logging.Events) Option {
	return func(r *Ranker) {
		if e != nil {
			r.events = e
		}
	}
}

// NewRanker returns a Ranker backed by gopsutil unless overridden.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		source: PlatformSource{},
		events: logging.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TopProcesses returns at most limit processes sorted by CPU percent,
// highest first. Missing CPU values sort as zero and ties keep enumeration
// order. Processes that exit or deny access while being read are skipped.
// A limit <= 0 means the default of 5.
func (r *Ranker) TopProcesses(ctx context.Context, limit int) []Info {
	if limit <= 0 {
		limit = defaults.ProcessLimit
	}

	handles, err := r.source.Processes(ctx)
	if err != nil {
		r.events.Error("failed to enumerate processes: " + err.Error())
		return nil
	}

	infos := make([]Info, 0, len(handles))
	for _, h := range handles {
		if ctx.Err() != nil {
			break
		}
		info, ok := read(ctx, h)
		if !ok {
			continue
		}
		infos = append(infos, info)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return ptr.Deref(infos[i].CPUPercent, 0) > ptr.Deref(infos[j].CPUPercent, 0)
	})

	if len(infos) > limit {
		infos = infos[:limit]
	}
	return infos
}

// Count returns the number of visible processes, or 0 when enumeration fails.
func (r *Ranker) Count(ctx context.Context) int {
	pids, err := r.source.PIDs(ctx)
	if err != nil {
		r.events.Error("failed to count processes: " + err.Error())
		return 0
	}
	return len(pids)
}

func read(ctx context.Context, h Handle) (Info, bool) {
	info := Info{PID: h.PID()}

	name, err := h.Name(ctx)
	if err != nil {
		if isGone(err) {
			return Info{}, false
		}
		slog.Debug("process name unavailable", "pid", info.PID, "error", err)
	}
	info.Name = name

	cpu, err := h.CPUPercent(ctx)
	switch {
	case err == nil:
		info.CPUPercent = ptr.To(cpu)
	case isGone(err):
		return Info{}, false
	}

	mem, err := h.MemoryPercent(ctx)
	switch {
	case err == nil:
		info.MemoryPercent = ptr.To(mem)
	case isGone(err):
		return Info{}, false
	}

	return info, true
}
