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
	"strconv"

	"github.com/NVIDIA/systracker/pkg/measurement"
)

// SubtypeTopPrefix prefixes the per-rank subtype names ("top.1", "top.2", ...).
const SubtypeTopPrefix = "top."

// Collector reports the process count and the top processes by CPU.
type Collector struct {
	Ranker *Ranker
	Limit  int
}

// Collect returns a process measurement with a "summary" subtype holding
// the count and one "top.N" subtype per ranked process.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	top := c.Ranker.TopProcesses(ctx, c.Limit)
	return ToMeasurement(top, c.Ranker.Count(ctx)), nil
}

// ToMeasurement converts a ranked list and process count to a measurement.
func ToMeasurement(top []Info, count int) *measurement.Measurement {
	b := measurement.NewMeasurement(measurement.TypeProcess).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder(measurement.SubtypeSummary).
			SetInt(measurement.KeyCount, count))

	for i, p := range top {
		b.WithSubtypeBuilder(measurement.NewSubtypeBuilder(SubtypeTopPrefix+strconv.Itoa(i+1)).
			Set(measurement.KeyPID, measurement.Int32(p.PID)).
			SetString(measurement.KeyName, p.Name).
			SetOptionalFloat64(measurement.KeyCPUPercent, p.CPUPercent).
			SetOptionalFloat64(measurement.KeyMemoryPercent, p.MemoryPercent))
	}
	return b.Build()
}
