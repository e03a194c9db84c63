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

// Package defaults provides centralized configuration constants for systracker.
//
// This package defines sampling windows, loop intervals, alert thresholds,
// and default paths used across the codebase. The configuration store falls
// back to these values when a key is absent.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/systracker/pkg/defaults"
//
//	pct, err := cpu.PercentWithContext(ctx, defaults.CPUSampleInterval, false)
//
// # Guidelines
//
//   - CPUSampleInterval must stay well below UpdateInterval, since each
//     cycle blocks for the whole sampling window.
//   - Thresholds are percentages compared with strict greater-than.
package defaults
