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

// Package header provides the common document header for systracker output.
//
// Snapshots carry a Kind, an APIVersion, and a flat
// Metadata map (timestamp, tool version, session id, host):
//
//	{
//	  "kind": "Snapshot",
//	  "apiVersion": "systracker.nvidia.com/v1",
//	  "metadata": {
//	    "timestamp": "2025-11-25T15:00:00Z",
//	    "version": "v0.1.0",
//	    "session": "0b6f...",
//	    "host": "workstation"
//	  }
//	}
package header
