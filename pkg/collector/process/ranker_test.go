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
	"errors"
	"io/fs"
	"testing"

	gproc "github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/systracker/pkg/measurement"
)

type fakeHandle struct {
	pid     int32
	name    string
	cpu     *float64
	mem     *float64
	nameErr error
	cpuErr  error
	memErr  error
}

var errUnsupported = errors.New("not implemented yet")

func (h fakeHandle) PID() int32 { return h.pid }

func (h fakeHandle) Name(context.Context) (string, error) { return h.name, h.nameErr }

func (h fakeHandle) CPUPercent(context.Context) (float64, error) {
	if h.cpuErr != nil {
		return 0, h.cpuErr
	}
	if h.cpu == nil {
		return 0, errUnsupported
	}
	return *h.cpu, nil
}

func (h fakeHandle) MemoryPercent(context.Context) (float64, error) {
	if h.memErr != nil {
		return 0, h.memErr
	}
	if h.mem == nil {
		return 0, errUnsupported
	}
	return *h.mem, nil
}

type fakeSource struct {
	handles []Handle
	pids    []int32
	err     error
}

func (s fakeSource) Processes(context.Context) ([]Handle, error) { return s.handles, s.err }
func (s fakeSource) PIDs(context.Context) ([]int32, error)       { return s.pids, s.err }

type recorder struct{ errors []string }

func (r *recorder) Stats(string, string) {}
func (r *recorder) Alert(string)         {}
func (r *recorder) Error(msg string)     { r.errors = append(r.errors, msg) }

func withCPU(values ...float64) []Handle {
	hs := make([]Handle, len(values))
	for i, v := range values {
		hs[i] = fakeHandle{pid: int32(i + 1), name: "p", cpu: ptr.To(v), mem: ptr.To(1.0)}
	}
	return hs
}

func TestTopProcesses_SortStableAndTruncate(t *testing.T) {
	r := NewRanker(WithSource(fakeSource{handles: withCPU(10, 90, 50, 90)}))

	top := r.TopProcesses(context.Background(), 3)
	require.Len(t, top, 3)
	assert.Equal(t, int32(2), top[0].PID)
	assert.Equal(t, int32(4), top[1].PID)
	assert.Equal(t, int32(3), top[2].PID)
	assert.Equal(t, 90.0, *top[0].CPUPercent)
	assert.Equal(t, 50.0, *top[2].CPUPercent)
}

func TestTopProcesses_DefaultLimit(t *testing.T) {
	r := NewRanker(WithSource(fakeSource{handles: withCPU(1, 2, 3, 4, 5, 6, 7)}))

	assert.Len(t, r.TopProcesses(context.Background(), 0), 5)
	assert.Len(t, r.TopProcesses(context.Background(), -2), 5)
	assert.Len(t, r.TopProcesses(context.Background(), 10), 7)
}

func TestTopProcesses_SkipsVanishedAndDenied(t *testing.T) {
	handles := []Handle{
		fakeHandle{pid: 1, name: "a", cpu: ptr.To(5.0), mem: ptr.To(1.0)},
		fakeHandle{pid: 2, nameErr: gproc.ErrorProcessNotRunning},
		fakeHandle{pid: 3, name: "c", cpuErr: fs.ErrPermission},
		fakeHandle{pid: 4, name: "d", cpu: ptr.To(1.0), memErr: gproc.ErrorProcessNotRunning},
		fakeHandle{pid: 5, name: "e", cpu: ptr.To(2.0), mem: ptr.To(2.0)},
	}
	r := NewRanker(WithSource(fakeSource{handles: handles}))

	top := r.TopProcesses(context.Background(), 10)
	require.Len(t, top, 2)
	assert.Equal(t, int32(1), top[0].PID)
	assert.Equal(t, int32(5), top[1].PID)
}

func TestTopProcesses_MissingFieldsStayNil(t *testing.T) {
	handles := []Handle{
		fakeHandle{pid: 1, name: "nocpu", mem: ptr.To(3.0)},
		fakeHandle{pid: 2, name: "busy", cpu: ptr.To(0.5)},
	}
	r := NewRanker(WithSource(fakeSource{handles: handles}))

	top := r.TopProcesses(context.Background(), 5)
	require.Len(t, top, 2)

	assert.Equal(t, "busy", top[0].Name)
	assert.Nil(t, top[0].MemoryPercent)
	assert.Equal(t, "nocpu", top[1].Name)
	assert.Nil(t, top[1].CPUPercent)
	assert.Equal(t, 3.0, *top[1].MemoryPercent)
}

func TestTopProcesses_EnumerationFailure(t *testing.T) {
	rec := &recorder{}
	r := NewRanker(WithSource(fakeSource{err: errors.New("proc unavailable")}), WithEvents(rec))

	assert.Empty(t, r.TopProcesses(context.Background(), 5))
	assert.Equal(t, 0, r.Count(context.Background()))
	assert.Len(t, rec.errors, 2)
}

func TestCount(t *testing.T) {
	r := NewRanker(WithSource(fakeSource{pids: []int32{1, 2, 3}}))
	assert.Equal(t, 3, r.Count(context.Background()))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "N/A", FormatPercent(nil))
	assert.Equal(t, "12.35", FormatPercent(ptr.To(12.345)))
	assert.Equal(t, "0.00", FormatPercent(ptr.To(0.0)))
}

func TestCollector(t *testing.T) {
	handles := []Handle{
		fakeHandle{pid: 7, name: "seven", cpu: ptr.To(7.0)},
		fakeHandle{pid: 8, name: "eight", cpu: ptr.To(8.0), mem: ptr.To(1.5)},
	}
	c := &Collector{
		Ranker: NewRanker(WithSource(fakeSource{handles: handles, pids: []int32{7, 8, 9}})),
		Limit:  5,
	}

	m, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, []string{measurement.SubtypeSummary, "top.1", "top.2"}, m.SubtypeNames())

	count, err := m.GetSubtype(measurement.SubtypeSummary).GetInt64(measurement.KeyCount)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	first := m.GetSubtype("top.1")
	name, err := first.GetString(measurement.KeyName)
	require.NoError(t, err)
	assert.Equal(t, "eight", name)
	assert.True(t, first.Has(measurement.KeyMemoryPercent))
	assert.False(t, m.GetSubtype("top.2").Has(measurement.KeyMemoryPercent))
}
