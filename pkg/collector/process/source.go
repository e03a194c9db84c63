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
	stderrors "errors"
	"io/fs"

	gproc "github.com/shirou/gopsutil/v3/process"
)

// Handle is one live process as seen by a Source.
type Handle interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
}

// Source enumerates processes.
type Source interface {
	Processes(ctx context.Context) ([]Handle, error)
	PIDs(ctx context.Context) ([]int32, error)
}

// PlatformSource is the gopsutil backed Source.
type PlatformSource struct{}

// Processes returns a handle for every visible process.
func (PlatformSource) Processes(ctx context.Context) ([]Handle, error) {
	procs, err := gproc.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Handle, 0, len(procs))
	for _, p := range procs {
		out = append(out, platformHandle{p: p})
	}
	return out, nil
}

// PIDs returns every visible process ID.
func (PlatformSource) PIDs(ctx context.Context) ([]int32, error) {
	return gproc.PidsWithContext(ctx)
}

type platformHandle struct {
	p *gproc.Process
}

func (h platformHandle) PID() int32 { return h.p.Pid }

func (h platformHandle) Name(ctx context.Context) (string, error) {
	return h.p.NameWithContext(ctx)
}

// CPUPercent is the average utilization since the process started.
func (h platformHandle) CPUPercent(ctx context.Context) (float64, error) {
	return h.p.CPUPercentWithContext(ctx)
}

func (h platformHandle) MemoryPercent(ctx context.Context) (float64, error) {
	pct, err := h.p.MemoryPercentWithContext(ctx)
	return float64(pct), err
}

// isGone reports whether err means the process exited or is off limits.
func isGone(err error) bool {
	return stderrors.Is(err, gproc.ErrorProcessNotRunning) ||
		stderrors.Is(err, fs.ErrPermission) ||
		stderrors.Is(err, fs.ErrNotExist)
}
