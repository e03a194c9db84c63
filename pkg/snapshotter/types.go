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

import (
	"sort"
	"strings"

	"github.com/NVIDIA/systracker/pkg/exporter"
	"github.com/NVIDIA/systracker/pkg/header"
	"github.com/NVIDIA/systracker/pkg/measurement"
)

// APIVersion is the schema version stamped on every snapshot.
const APIVersion = "systracker.nvidia.com/v1alpha1"

// Record field names that precede the measurement fields.
const (
	FieldTimestamp = "timestamp"
	FieldHost      = "host"
)

// NewSnapshot creates a new Snapshot instance with an initialized Measurements slice.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Measurements: make([]*measurement.Measurement, 0),
	}
}

// Snapshot is one complete pass over the enabled metric categories.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// Measurements contains one entry per enabled category, in collection order.
	Measurements []*measurement.Measurement `json:"measurements" yaml:"measurements"`
}

// Get returns the measurement of the given type, or nil when the category
// was disabled or failed.
func (s *Snapshot) Get(t measurement.Type) *measurement.Measurement {
	for _, m := range s.Measurements {
		if m != nil && m.Type == t {
			return m
		}
	}
	return nil
}

// Record flattens the snapshot into an export record. Timestamp and host
// come first, followed by "<type>_<key>" for every reading of the "usage"
// or "summary" subtype of each measurement, keys sorted within a type.
// When fields is not empty only the measurement fields matching one of the
// wildcard patterns are kept.
func (s *Snapshot) Record(fields ...string) exporter.Record {
	rec := exporter.NewRecord(
		FieldTimestamp, s.Metadata[header.KeyTimestamp],
		FieldHost, s.Metadata[header.KeyHost],
	)

	for _, m := range s.Measurements {
		if m == nil {
			continue
		}
		st := primary(m)
		if st == nil {
			continue
		}

		prefix := strings.ToLower(m.Type.String()) + "_"
		readings := make(map[string]measurement.Reading, len(st.Data))
		for k, v := range st.Data {
			readings[prefix+k] = v
		}
		if len(fields) > 0 {
			readings = measurement.FilterIn(readings, fields)
		}

		names := make([]string, 0, len(readings))
		for name := range readings {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			rec = rec.Set(name, readings[name].Any())
		}
	}
	return rec
}

// Records flattens every snapshot with the same field selection.
func Records(snaps []*Snapshot, fields ...string) []exporter.Record {
	out := make([]exporter.Record, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.Record(fields...))
	}
	return out
}
