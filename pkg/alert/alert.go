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

package alert

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/NVIDIA/systracker/pkg/config"
	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/logging"
)

// Type identifies the metric an alert was raised for.
type Type string

const (
	TypeCPU    Type = "CPU"
	TypeMemory Type = "Memory"
	TypeDisk   Type = "Disk"
)

// Alert is one threshold breach.
type Alert struct {
	Type      Type      `json:"type" yaml:"type"`
	Message   string    `json:"message" yaml:"message"`
	Value     float64   `json:"value" yaml:"value"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Evaluator compares readings against thresholds and keeps the history of
// breaches in insertion order. There is no hysteresis or de-duplication:
// every reading above threshold raises a new alert.
type Evaluator struct {
	cpu, memory, disk float64

	events  logging.Events
	console io.Writer
	now     func() time.Time
	limit   int

	mu      sync.Mutex
	history []Alert
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithConfig reads thresholds and the history limit from a config store.
func WithConfig(s *config.Store) Option {
	return func(e *Evaluator) {
		e.cpu, e.memory, e.disk = s.Thresholds()
		e.limit = s.GetInt(config.KeyAlertHistoryLimit, e.limit)
	}
}

// WithThresholds sets the CPU, memory and disk thresholds in percent.
func WithThresholds(cpu, memory, disk float64) Option {
	return func(e *Evaluator) {
		e.cpu, e.memory, e.disk = cpu, memory, disk
	}
}

// WithEvents sets where breaches are logged.
func WithEvents(events logging.Events) Option {
	return func(e *Evaluator) {
		if events != nil {
			e.events = events
		}
	}
}

// WithConsole sets where the alert notice is printed. Nil silences it.
func WithConsole(w io.Writer) Option {
	return func(e *Evaluator) {
		e.console = w
	}
}

// WithHistoryLimit keeps only the newest n alerts. Zero or less is unbounded.
func WithHistoryLimit(n int) Option {
	return func(e *Evaluator) {
		e.limit = n
	}
}

// WithClock overrides the alert timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator returns an Evaluator with the default 80/85/90 thresholds.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		cpu:     defaults.CPUThreshold,
		memory:  defaults.MemoryThreshold,
		disk:    defaults.DiskThreshold,
		events:  logging.Discard,
		console: os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckCPU raises an alert when value is strictly above the CPU threshold.
func (e *Evaluator) CheckCPU(value float64) bool {
	return e.check(TypeCPU, value)
}

// CheckMemory raises an alert when value is strictly above the memory threshold.
func (e *Evaluator) CheckMemory(value float64) bool {
	return e.check(TypeMemory, value)
}

// CheckDisk raises an alert when value is strictly above the disk threshold.
func (e *Evaluator) CheckDisk(value float64) bool {
	return e.check(TypeDisk, value)
}

// Threshold returns the configured threshold for t.
func (e *Evaluator) Threshold(t Type) float64 {
	switch t {
	case TypeCPU:
		return e.cpu
	case TypeMemory:
		return e.memory
	case TypeDisk:
		return e.disk
	default:
		return 0
	}
}

// History returns a copy of the raised alerts, oldest first.
func (e *Evaluator) History() []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Alert, len(e.history))
	copy(out, e.history)
	return out
}

// Message formats the alert text for a breach.
func Message(t Type, value, threshold float64) string {
	return fmt.Sprintf("%s usage is %.2f%% (threshold: %.2f%%)", t, value, threshold)
}

func (e *Evaluator) check(t Type, value float64) bool {
	threshold := e.Threshold(t)
	if !(value > threshold) {
		return false
	}

	a := Alert{
		Type:      t,
		Message:   Message(t, value, threshold),
		Value:     value,
		Threshold: threshold,
		Timestamp: e.now(),
	}

	e.mu.Lock()
	e.history = append(e.history, a)
	if e.limit > 0 && len(e.history) > e.limit {
		e.history = append(e.history[:0], e.history[len(e.history)-e.limit:]...)
	}
	e.mu.Unlock()

	alertsTotal.WithLabelValues(string(t)).Inc()
	e.events.Alert(string(t) + ": " + a.Message)
	if e.console != nil {
		fmt.Fprintf(e.console, "\n⚠️  ALERT: %s\n", a.Message)
	}
	return true
}
