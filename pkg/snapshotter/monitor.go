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
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/systracker/pkg/alert"
	"github.com/NVIDIA/systracker/pkg/collector"
	"github.com/NVIDIA/systracker/pkg/config"
	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/header"
	"github.com/NVIDIA/systracker/pkg/logging"
	"github.com/NVIDIA/systracker/pkg/measurement"
	"github.com/NVIDIA/systracker/pkg/serializer"
)

// samplesPrealloc caps the up-front allocation for a sampling run.
const samplesPrealloc = 64

// displayKeys maps each category to the config flag that enables it.
var displayKeys = map[measurement.Type]string{
	measurement.TypeCPU:         config.KeyShowCPU,
	measurement.TypeMemory:      config.KeyShowMemory,
	measurement.TypeDisk:        config.KeyShowDisk,
	measurement.TypeNetwork:     config.KeyShowNetwork,
	measurement.TypeProcess:     config.KeyShowProcesses,
	measurement.TypeTemperature: config.KeyShowTemperatures,
}

// Monitor runs snapshot cycles over the categories enabled in its config.
// Each cycle prints the readings, logs them as stats events, checks CPU,
// memory and disk against their alert thresholds and updates the exported
// metrics. Zero-value fields are filled with production defaults on first use.
type Monitor struct {
	// Version is recorded in every snapshot header.
	Version string

	// Config holds display flags, thresholds and collector settings. If nil, built-in defaults are used.
	Config *config.Store

	// Factory creates the collectors. If nil, a default factory is built from Config.
	Factory collector.Factory

	// Events receives stats and error events. If nil, events are dropped.
	Events logging.Events

	// Alerts evaluates thresholds. If nil, one is built from Config.
	Alerts *alert.Evaluator

	// Out receives the console rendering. If nil, os.Stdout is used.
	Out io.Writer

	// Serializer, when set, also writes each snapshot in structured form.
	Serializer serializer.Serializer

	// Now is the clock used for snapshot timestamps. If nil, time.Now is used.
	Now func() time.Time

	once    sync.Once
	session string
	host    string
}

func (m *Monitor) init() {
	m.once.Do(func() {
		if m.Config == nil {
			m.Config = config.Default()
		}
		if m.Events == nil {
			m.Events = logging.Discard
		}
		if m.Out == nil {
			m.Out = os.Stdout
		}
		if m.Now == nil {
			m.Now = time.Now
		}
		if m.Factory == nil {
			m.Factory = collector.NewDefaultFactory(
				collector.WithDiskPath(m.Config.GetString(config.KeyDiskPath, defaults.DiskPath)),
				collector.WithProcessLimit(m.Config.ProcessLimit()),
				collector.WithEvents(m.Events),
			)
		}
		if m.Alerts == nil {
			m.Alerts = alert.NewEvaluator(
				alert.WithConfig(m.Config),
				alert.WithEvents(m.Events),
				alert.WithConsole(m.Out),
			)
		}
		m.session = uuid.NewString()
		m.host = Hostname()
		slog.Debug("monitor initialized",
			slog.String("session", m.session),
			slog.String("host", m.host),
			slog.String("config", m.Config.Source()))
	})
}

// Session returns the identifier shared by all snapshots of this monitor.
func (m *Monitor) Session() string {
	m.init()
	return m.session
}

// Snapshot runs one cycle: CPU, memory, disk, network, processes and
// temperatures, each only when its display flag is set. A failing category
// is logged and skipped without affecting the others. Canceling ctx does
// not cut the cycle short; its deadline, if any, still applies. The only
// error returned is a failure to write the structured output.
func (m *Monitor) Snapshot(ctx context.Context) (*Snapshot, error) {
	m.init()

	ctx, cancel := detach(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		snapshotCycleDuration.Observe(time.Since(start).Seconds())
	}()

	at := m.Now()
	snap := NewSnapshot()
	snap.InitAt(header.KindSnapshot, APIVersion, m.Version, at)
	snap.Metadata[header.KeySession] = m.session
	snap.Metadata[header.KeyHost] = m.host

	fmt.Fprintf(m.Out, "\n%s\n", banner)
	fmt.Fprintf(m.Out, "System Tracker - %s\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(m.Out, "%s\n\n", banner)

	failed := false
	for _, t := range measurement.Types {
		if !m.Config.GetBool(displayKeys[t], true) {
			continue
		}

		meas, err := m.collect(ctx, t)
		if err != nil {
			failed = true
			m.Events.Error(fmt.Sprintf("failed to collect %s: %v", strings.ToLower(t.String()), err))
			continue
		}

		snap.Measurements = append(snap.Measurements, meas)
		render(m.Out, meas)
		m.Events.Stats(t.String(), describe(meas))
		m.evaluate(meas)
		observe(meas)
	}

	if failed {
		snapshotCycleTotal.WithLabelValues("error").Inc()
	} else {
		snapshotCycleTotal.WithLabelValues("success").Inc()
	}

	slog.Debug("snapshot complete", slog.Int("measurements", len(snap.Measurements)))

	if m.Serializer != nil {
		if err := m.Serializer.Serialize(ctx, snap); err != nil {
			slog.Error("failed to serialize", slog.String("error", err.Error()))
			return snap, fmt.Errorf("failed to serialize: %w", err)
		}
	}

	return snap, nil
}

// Run repeats Snapshot every interval until ctx is canceled. A cycle in
// progress always completes; cancellation is observed before each pause, so
// an interrupt during a cycle never starts another one. Cancellation is a
// normal stop: "Monitoring stopped." is printed and nil returned.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	m.init()

	slog.Info("monitoring started",
		slog.String("session", m.session),
		slog.Duration("interval", interval))

	for {
		if _, err := m.Snapshot(ctx); err != nil {
			return err
		}
		if !pause(ctx, interval) {
			break
		}
	}

	fmt.Fprintln(m.Out, "\nMonitoring stopped.")
	slog.Info("monitoring stopped", slog.String("session", m.session))
	return nil
}

// Samples runs up to n cycles, interval apart, and returns the snapshots.
// Cancellation ends sampling early; the snapshots taken so far are returned.
func (m *Monitor) Samples(ctx context.Context, n int, interval time.Duration) ([]*Snapshot, error) {
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("sample count must be positive, got %d", n))
	}
	m.init()

	snaps := make([]*Snapshot, 0, min(n, samplesPrealloc))
	for i := 0; i < n; i++ {
		snap, err := m.Snapshot(ctx)
		if err != nil {
			return snaps, err
		}
		snaps = append(snaps, snap)
		if i < n-1 && !pause(ctx, interval) {
			slog.Info("sampling interrupted", slog.Int("taken", len(snaps)), slog.Int("requested", n))
			break
		}
	}
	return snaps, nil
}

// History returns the alerts raised so far.
func (m *Monitor) History() []alert.Alert {
	m.init()
	return m.Alerts.History()
}

func (m *Monitor) collect(ctx context.Context, t measurement.Type) (*measurement.Measurement, error) {
	name := strings.ToLower(t.String())
	start := time.Now()
	defer func() {
		snapshotCollectorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	c, err := collector.Create(m.Factory, t)
	if err != nil {
		snapshotCollectorErrors.WithLabelValues(name).Inc()
		return nil, err
	}
	meas, err := c.Collect(ctx)
	if err != nil {
		snapshotCollectorErrors.WithLabelValues(name).Inc()
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, name+" collection timed out", err)
		}
		return nil, err
	}
	return meas, nil
}

func (m *Monitor) evaluate(meas *measurement.Measurement) {
	st := meas.GetSubtype(measurement.SubtypeUsage)
	if st == nil {
		return
	}
	v, err := st.GetFloat64(measurement.KeyPercent)
	if err != nil {
		return
	}

	switch meas.Type {
	case measurement.TypeCPU:
		m.Alerts.CheckCPU(v)
	case measurement.TypeMemory:
		m.Alerts.CheckMemory(v)
	case measurement.TypeDisk:
		m.Alerts.CheckDisk(v)
	}
}

// detach returns a context that ignores cancellation of ctx but keeps its
// deadline.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	cycle := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(cycle, deadline)
	}
	return cycle, func() {}
}

// pause waits for d or until ctx is canceled. It reports whether the
// caller should run another cycle.
func pause(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// WriteMetrics writes the default registry to path in the node_exporter
// textfile format.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write metrics to "+path, err)
	}
	return nil
}
