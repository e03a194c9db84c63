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

// Package host reads CPU, memory, disk and network statistics.
//
// Reader wraps a Source (gopsutil in production) and absorbs every read
// failure: the failure is reported on the configured logging.Events sink
// and a zeroed record is returned. CPU blocks for a one second window.
//
//	r := host.NewReader(host.WithEvents(events), host.WithDiskPath("/"))
//	cpu := r.CPU(ctx)
//	fmt.Printf("CPU Usage: %.2f%%\n", cpu.Percent)
package host
