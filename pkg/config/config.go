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

package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/errors"
)

// Well known keys.
const (
	KeyUpdateInterval    = "update_interval"
	KeyProcessLimit      = "process_limit"
	KeyShowCPU           = "display.show_cpu"
	KeyShowMemory        = "display.show_memory"
	KeyShowDisk          = "display.show_disk"
	KeyShowNetwork       = "display.show_network"
	KeyShowProcesses     = "display.show_processes"
	KeyShowTemperatures  = "display.show_temperatures"
	KeyCPUThreshold      = "alert_thresholds.cpu_percent"
	KeyMemoryThreshold   = "alert_thresholds.memory_percent"
	KeyDiskThreshold     = "alert_thresholds.disk_percent"
	KeyDiskPath          = "disk_path"
	KeyLogDir            = "log_dir"
	KeyExportDir         = "export_dir"
	KeyAlertHistoryLimit = "alert_history_limit"
)

// builtins are the settings used when no config file exists.
var builtins = map[string]any{
	KeyUpdateInterval:    int(defaults.UpdateInterval / time.Second),
	KeyShowCPU:           true,
	KeyShowMemory:        true,
	KeyShowDisk:          true,
	KeyShowNetwork:       true,
	KeyShowProcesses:     true,
	KeyShowTemperatures:  true,
	KeyProcessLimit:      defaults.ProcessLimit,
	KeyCPUThreshold:      defaults.CPUThreshold,
	KeyMemoryThreshold:   defaults.MemoryThreshold,
	KeyDiskThreshold:     defaults.DiskThreshold,
	KeyDiskPath:          defaults.DiskPath,
	KeyLogDir:            defaults.LogDir,
	KeyExportDir:         defaults.ExportDir,
	KeyAlertHistoryLimit: 0,
}

// Store is a read-only view over a nested settings tree, addressed with
// dotted keys. It is safe for concurrent use once constructed.
type Store struct {
	v *viper.Viper
}

// Option mutates a Store during construction.
type Option func(*Store)

// WithValue sets a dotted key, taking precedence over file and defaults.
func WithValue(key string, value any) Option {
	return func(s *Store) {
		s.v.Set(key, value)
	}
}

// Default returns a Store holding the built-in settings.
func Default(opts ...Option) *Store {
	v := viper.New()
	for key, value := range builtins {
		v.SetDefault(key, value)
	}
	return newStore(v, opts)
}

// NewFromMap returns a Store over a deep copy of values.
func NewFromMap(values map[string]any, opts ...Option) *Store {
	v := viper.New()
	_ = v.MergeConfigMap(copyMap(values))
	return newStore(v, opts)
}

// Load reads settings from a JSON, YAML or TOML file, chosen by extension
// (JSON when there is none). A missing file yields the built-in defaults.
// A file that exists but cannot be read or parsed is an INVALID_REQUEST
// error naming the path. A loaded file replaces the built-ins; keys it
// omits fall back to the caller's default.
func Load(path string, opts ...Option) (*Store, error) {
	if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return Default(opts...), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	// Fail fast if the file exists but is unreadable
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to load config file "+path, err, map[string]any{"path": path})
	}

	slog.Debug("config loaded", "path", path, "keys", len(v.AllKeys()))

	return newStore(v, opts), nil
}

func newStore(v *viper.Viper, opts []Option) *Store {
	s := &Store{v: v}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the file the Store was loaded from, or "" for defaults.
func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.v.ConfigFileUsed()
}

// Get returns the value at the dotted key, or def when any segment is
// missing or an intermediate value is not a map.
func (s *Store) Get(key string, def any) any {
	if s == nil || !s.v.IsSet(key) {
		return def
	}
	return s.v.Get(key)
}

// GetBool returns the boolean at key, or def.
func (s *Store) GetBool(key string, def bool) bool {
	if v, ok := s.Get(key, def).(bool); ok {
		return v
	}
	return def
}

// GetString returns the string at key, or def.
func (s *Store) GetString(key, def string) string {
	if v, ok := s.Get(key, def).(string); ok {
		return v
	}
	return def
}

// GetInt returns the integer at key, or def. Floating point values are
// accepted when they carry no fractional part.
func (s *Store) GetInt(key string, def int) int {
	switch v := s.Get(key, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v)
		}
	}
	return def
}

// GetFloat64 returns the number at key, or def.
func (s *Store) GetFloat64(key string, def float64) float64 {
	switch v := s.Get(key, def).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return def
}

// GetDuration interprets the number at key as seconds.
func (s *Store) GetDuration(key string, def time.Duration) time.Duration {
	secs := s.GetFloat64(key, def.Seconds())
	if secs < 0 || math.IsNaN(secs) {
		return def
	}
	return time.Duration(secs * float64(time.Second))
}

// UpdateInterval is the pause between continuous monitoring cycles.
func (s *Store) UpdateInterval() time.Duration {
	return s.GetDuration(KeyUpdateInterval, defaults.UpdateInterval)
}

// ProcessLimit is the number of processes shown in the top list.
func (s *Store) ProcessLimit() int {
	n := s.GetInt(KeyProcessLimit, defaults.ProcessLimit)
	if n <= 0 {
		return defaults.ProcessLimit
	}
	return n
}

// Thresholds returns the CPU, memory and disk alert thresholds in percent.
func (s *Store) Thresholds() (cpu, memory, disk float64) {
	return s.GetFloat64(KeyCPUThreshold, defaults.CPUThreshold),
		s.GetFloat64(KeyMemoryThreshold, defaults.MemoryThreshold),
		s.GetFloat64(KeyDiskThreshold, defaults.DiskThreshold)
}

// copyMap detaches nested maps from the caller; viper keeps references.
func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if m, ok := v.(map[string]any); ok {
			out[k] = copyMap(m)
			continue
		}
		out[k] = v
	}
	return out
}
