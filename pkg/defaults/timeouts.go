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

package defaults

import "time"

// Sampling windows for metric reads.
const (
	// CPUSampleInterval is the window over which CPU utilization is measured.
	// The CPU read blocks for this duration.
	CPUSampleInterval = 1 * time.Second
)

// Monitor loop timing.
const (
	// UpdateInterval is the default pause between continuous-mode cycles.
	UpdateInterval = 5 * time.Second

	// MinUpdateInterval is the smallest interval accepted from the CLI.
	// Zero is allowed and means cycles run back to back.
	MinUpdateInterval = 0 * time.Second
)

// Threshold defaults, in percent.
const (
	// CPUThreshold is the default CPU alert threshold.
	CPUThreshold = 80.0

	// MemoryThreshold is the default memory alert threshold.
	MemoryThreshold = 85.0

	// DiskThreshold is the default disk alert threshold.
	DiskThreshold = 90.0
)

// Sizes and paths.
const (
	// ProcessLimit is the default number of processes shown in the ranking.
	ProcessLimit = 5

	// DiskPath is the mount point whose usage is reported.
	DiskPath = "/"

	// LogDir is the default directory for event log files.
	LogDir = "logs"

	// ExportDir is the default directory for export files.
	ExportDir = "exports"

	// ConfigFile is the default configuration file path.
	ConfigFile = "config.json"
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout bounds a single-shot snapshot run.
	CLISnapshotTimeout = 5 * time.Minute
)
