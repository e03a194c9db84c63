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

// Package exporter writes collected samples to JSON, CSV or YAML files.
//
// Samples are flat Records whose field order is preserved in every format.
// Files land in the exporter's directory, which is created on demand; the
// default name is tracker_data_<YYYYMMDDHHMMSS>.<ext>, unique per second.
//
//	ex := exporter.New("exports")
//	path, err := ex.ExportCSV(records, "")
//
// CSV requires at least one record and identical field lists across records
// (INVALID_REQUEST otherwise). Any file system failure is returned as an
// EXPORT_FAILED StructuredError naming the path.
package exporter
