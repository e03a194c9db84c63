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

// Package collector defines how host data is gathered for a snapshot.
//
// # Core Interface
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*measurement.Measurement, error)
//	}
//
// Collectors absorb platform read failures: a failed read is reported on
// the logging.Events sink and the measurement carries zero values. An error
// is returned only for a canceled context or a misconfigured collector.
//
// # Factory Pattern
//
// Factory abstracts collector creation so tests can swap platform sources:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithDiskPath("/"),
//	    collector.WithProcessLimit(5),
//	    collector.WithEvents(events),
//	)
//	c, err := collector.Create(factory, measurement.TypeCPU)
//
// # Subpackages
//
//   - collector/host - CPU, memory, disk and network statistics
//   - collector/process - top processes by CPU and process count
//   - collector/sensors - temperature sensors
//
// All production sources are backed by gopsutil.
package collector
