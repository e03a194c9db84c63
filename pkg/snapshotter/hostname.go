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

package snapshotter

import "os"

// EnvHostname overrides the host name recorded in snapshots.
const EnvHostname = "SYSTRACKER_HOSTNAME"

// Hostname returns the name of the current host.
// It checks SYSTRACKER_HOSTNAME, then the kernel host name, then HOSTNAME.
// Returns an empty string if none is available.
func Hostname() string {
	if name := os.Getenv(EnvHostname); name != "" {
		return name
	}
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return os.Getenv("HOSTNAME")
}
