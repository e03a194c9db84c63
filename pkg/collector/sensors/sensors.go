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

package sensors

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/measurement"
)

// Subtype context keys.
const (
	ContextGroup = "group"
	ContextLabel = "label"
)

// Reading is one temperature probe in degrees Celsius. Values the sensor
// does not report are nil.
type Reading struct {
	Label    string   `json:"label" yaml:"label"`
	Current  *float64 `json:"current,omitempty" yaml:"current,omitempty"`
	High     *float64 `json:"high,omitempty" yaml:"high,omitempty"`
	Critical *float64 `json:"critical,omitempty" yaml:"critical,omitempty"`
}

// Temperatures groups readings by sensor group (chip or zone).
// Available is false when the platform exposes no sensors.
type Temperatures struct {
	Available bool                 `json:"available" yaml:"available"`
	Groups    map[string][]Reading `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// GroupNames returns the group names in lexical order.
func (t Temperatures) GroupNames() []string {
	names := make([]string, 0, len(t.Groups))
	for name := range t.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatCelsius renders v as "<v>°C", or N/A when nil.
func FormatCelsius(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f°C", *v)
}

// Stat is a raw sensor value as reported by the platform.
type Stat struct {
	Key      string
	Current  float64
	High     float64
	Critical float64
}

// Source reads raw sensor values.
type Source interface {
	Temperatures(ctx context.Context) ([]Stat, error)
}

// PlatformSource is the gopsutil backed Source.
type PlatformSource struct{}

// Temperatures returns all sensors gopsutil can see. Partial results may
// come with an error.
func (PlatformSource) Temperatures(ctx context.Context) ([]Stat, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	stats := make([]Stat, 0, len(temps))
	for _, t := range temps {
		stats = append(stats, Stat{
			Key:      t.SensorKey,
			Current:  t.Temperature,
			High:     t.High,
			Critical: t.Critical,
		})
	}
	return stats, err
}

// Reader enumerates temperature sensors.
type Reader struct {
	Source Source
}

// NewReader returns a Reader over the platform sensors.
func NewReader() *Reader {
	return &Reader{Source: PlatformSource{}}
}

// Read groups all sensor readings. Sensor keys of the form "group_label"
// are split on the first underscore; a key without one is both group and
// label. Zero high and critical limits are treated as not reported. When
// the platform yields no readings the error carries ErrCodeUnavailable.
func (r *Reader) Read(ctx context.Context) (Temperatures, error) {
	stats, err := r.Source.Temperatures(ctx)
	if len(stats) == 0 {
		if err == nil {
			return Temperatures{}, errors.New(errors.ErrCodeUnavailable, "no temperature sensors found")
		}
		return Temperatures{}, errors.Wrap(errors.ErrCodeUnavailable, "temperature sensors unavailable", err)
	}
	if err != nil {
		slog.Debug("partial temperature read", "error", err, "sensors", len(stats))
	}

	t := Temperatures{Available: true, Groups: make(map[string][]Reading)}
	for _, s := range stats {
		group, label := splitKey(s.Key)
		t.Groups[group] = append(t.Groups[group], Reading{
			Label:    label,
			Current:  ptr.To(s.Current),
			High:     nonZero(s.High),
			Critical: nonZero(s.Critical),
		})
	}
	return t, nil
}

// ReadAll is Read with unavailability reported as Available=false rather
// than as an error.
func (r *Reader) ReadAll(ctx context.Context) Temperatures {
	t, err := r.Read(ctx)
	if err != nil {
		slog.Debug("temperature sensors unavailable", "error", err)
	}
	return t
}

// Collect implements the measurement collector contract.
func (r *Reader) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.ReadAll(ctx).Measurement(), nil
}

// Measurement converts the readings to a temperature measurement. The first
// subtype is "summary" with supported=<Available>; each reading follows as
// a "<group>/<label>" subtype carrying current, high and critical when
// reported.
func (t Temperatures) Measurement() *measurement.Measurement {
	b := measurement.NewMeasurement(measurement.TypeTemperature).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder(measurement.SubtypeSummary).
			SetBool(measurement.KeySupported, t.Available))

	for _, group := range t.GroupNames() {
		for _, rd := range t.Groups[group] {
			b.WithSubtypeBuilder(measurement.NewSubtypeBuilder(group+"/"+rd.Label).
				WithContext(ContextGroup, group).
				WithContext(ContextLabel, rd.Label).
				SetOptionalFloat64(measurement.KeyCurrent, rd.Current).
				SetOptionalFloat64(measurement.KeyHigh, rd.High).
				SetOptionalFloat64(measurement.KeyCritical, rd.Critical))
		}
	}
	return b.Build()
}

// FromMeasurement rebuilds readings from a temperature measurement.
func FromMeasurement(m *measurement.Measurement) Temperatures {
	var t Temperatures
	if m == nil {
		return t
	}
	if st := m.GetSubtype(measurement.SubtypeSummary); st != nil {
		if r := st.Get(measurement.KeySupported); r != nil {
			t.Available, _ = r.Any().(bool)
		}
	}
	for i := range m.Subtypes {
		st := &m.Subtypes[i]
		group := st.Context[ContextGroup]
		if st.Name == measurement.SubtypeSummary || group == "" {
			continue
		}
		if t.Groups == nil {
			t.Groups = make(map[string][]Reading)
		}
		t.Groups[group] = append(t.Groups[group], Reading{
			Label:    st.Context[ContextLabel],
			Current:  optional(st, measurement.KeyCurrent),
			High:     optional(st, measurement.KeyHigh),
			Critical: optional(st, measurement.KeyCritical),
		})
	}
	return t
}

func optional(st *measurement.Subtype, key string) *float64 {
	v, err := st.GetFloat64(key)
	if err != nil {
		return nil
	}
	return ptr.To(v)
}

func splitKey(key string) (group, label string) {
	group, label, _ = strings.Cut(key, "_")
	if group == "" {
		group = "unknown"
	}
	if label == "" {
		label = group
	}
	return group, label
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return ptr.To(v)
}
