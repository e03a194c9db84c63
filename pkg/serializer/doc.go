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

// Package serializer encodes systracker data.
//
// Three formats are supported:
//   - JSON: indented, used for snapshot output, and exports
//   - YAML: two space indent, used for the same purposes
//   - Table: a sorted FIELD/VALUE listing of flattened keys (write only)
//
// Writing:
//
//	w := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	if err := w.Serialize(ctx, snapshot); err != nil {
//		return err
//	}
//
// File writers create parent directories and own the file handle:
//
//	w, err := serializer.NewFileWriter(serializer.FormatJSON, "exports/out.json")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
// Flatten exposes the dotted-key walk used by the table format so that
// other packages can render nested values the same way.
package serializer
