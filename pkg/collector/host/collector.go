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

	"github.com/NVIDIA/systracker/pkg/measurement"
)

// Collector exposes one Reader category as a measurement collector.
// Type must be one of cpu, memory, disk or network.
type Collector struct {
	Reader *Reader
	Type   measurement.Type
}

// Collect samples the category. Read failures yield a zeroed measurement,
// never an error; only an unsupported Type or a canceled context fails.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch c.Type {
	case measurement.TypeCPU:
		return c.Reader.CPU(ctx).Measurement(), nil
	case measurement.TypeMemory:
		return c.Reader.Memory(ctx).Measurement(), nil
	case measurement.TypeDisk:
		return c.Reader.Disk(ctx).Measurement(), nil
	case measurement.TypeNetwork:
		return c.Reader.Network(ctx).Measurement(), nil
	default:
		return nil, fmt.Errorf("host collector does not support type %q", c.Type)
	}
}
