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

// Package config loads systracker settings.
//
// Settings are a nested tree read through viper from a JSON, YAML or TOML
// file (the format is chosen by extension). Values are addressed with
// dotted keys:
//
//	store, err := config.Load("config.json")
//	if err != nil {
//	    return err // INVALID_REQUEST: file exists but is unreadable or malformed
//	}
//	if store.GetBool(config.KeyShowCPU, true) { ... }
//
// # Defaults
//
// When the file does not exist the built-in tree is used:
//
//	update_interval: 5
//	display.show_{cpu,memory,disk,network,processes,temperatures}: true
//	process_limit: 5
//	alert_thresholds: {cpu_percent: 80, memory_percent: 85, disk_percent: 90}
//	disk_path: "/", log_dir: "logs", export_dir: "exports"
//	alert_history_limit: 0 (unbounded)
//
// A file that exists replaces the tree; keys it omits resolve to the
// default passed to the getter.
//
// A Store is immutable after construction and safe for concurrent use.
package config
