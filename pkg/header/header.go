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

package header

import (
	"time"
)

// Kind represents the type of a systracker document.
type Kind string

// KindSnapshot is one complete monitoring cycle.
const KindSnapshot Kind = "Snapshot"

// Metadata keys written by InitAt and by the snapshotter.
const (
	KeyTimestamp = "timestamp"
	KeyVersion   = "version"
	KeySession   = "session"
	KeyHost      = "host"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Header contains metadata and versioning information for systracker documents.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing where and when the document was produced.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// InitAt initializes the Header with the specified kind, apiVersion, and version.
// It resets Metadata and records at as the capture time in RFC3339 UTC.
func (h *Header) InitAt(kind Kind, apiVersion string, version string, at time.Time) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = make(map[string]string)

	h.Metadata[KeyTimestamp] = at.UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata[KeyVersion] = version
	}
}
