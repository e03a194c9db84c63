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
// Package measurement provides the typed data model for system metric samples.
//
// # Core Types
//
//   - Type: the metric category (CPU, Memory, Disk, Network, Process, Temperature)
//   - Measurement: a Type and a slice of Subtypes
//   - Subtype: named collection of readings, e.g. "usage", or one ranked process
//   - Reading: interface over type-safe scalar values (int, uint64, float64, string, bool)
//
// Readings the platform could not supply are left out of Subtype.Data rather
// than stored as zero, so consumers can tell "0" from "unknown".
//
// # Building
//
//	m := measurement.NewMeasurement(measurement.TypeMemory).
//	    WithSubtypeBuilder(
//	        measurement.NewSubtypeBuilder(measurement.SubtypeUsage).
//	            SetUint64(measurement.KeyTotal, total).
//	            SetFloat64(measurement.KeyPercent, pct),
//	    ).
//	    Build()
//
// # Filtering
//
// FilterIn and MatchesAny select keys with "*" wildcard patterns:
//
//	kept := measurement.FilterIn(st.Data, []string{"*_percent"})
//
// # Serialization
//
// Readings marshal to their underlying scalar in JSON and YAML, so a
// measurement renders as plain nested objects.
package measurement
