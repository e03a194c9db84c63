// Package snapshotter runs system snapshot cycles and the continuous monitor loop.
//
// # Overview
//
// A snapshot is one pass over the enabled metric categories, always in the
// same order: CPU, Memory, Disk, Network, Process, Temperature. Each
// category is gated by its display flag in the config store, printed to
// the console, logged as a stats event and, for CPU, memory and disk,
// checked against its alert threshold. Categories are failure-isolated: a
// collector error is logged and the cycle moves on.
//
// # Core Types
//
// Monitor: orchestrates cycles
//
//	type Monitor struct {
//	    Version    string                // Recorded in snapshot headers
//	    Config     *config.Store         // Display flags, thresholds (optional)
//	    Factory    collector.Factory     // Collector factory (optional)
//	    Events     logging.Events        // Event log sink (optional)
//	    Alerts     *alert.Evaluator      // Threshold evaluator (optional)
//	    Out        io.Writer             // Console output (optional)
//	    Serializer serializer.Serializer // Structured output (optional)
//	}
//
// Snapshot: captured data
//
//	type Snapshot struct {
//	    Header                                  // API version, kind, metadata
//	    Measurements []*measurement.Measurement // Collected data
//	}
//
// # Usage
//
// Single snapshot:
//
//	m := &snapshotter.Monitor{Version: "v1.0.0"}
//	if _, err := m.Snapshot(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Continuous mode until interrupted:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := m.Run(ctx, 5*time.Second); err != nil {
//	    log.Fatal(err)
//	}
//
// Collect samples for export:
//
//	snaps, err := m.Samples(ctx, 10, time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := exporter.New("exports").ExportCSV(snapshotter.Records(snaps), "")
//
// # Snapshot Structure
//
//	kind: Snapshot
//	apiVersion: systracker.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v1.0.0
//	  session: 0b0f3c9e-...
//	  host: worker-1
//	measurements:
//	  - type: CPU
//	    subtypes:
//	      - subtype: usage
//	        data:
//	          percent: 12.5
//	          cores: 8
//
// # Cancellation
//
// Snapshot ignores cancellation of its context, so a cycle in progress is
// never interrupted. A deadline on the context still bounds the cycle.
// Run and Samples check the context before every pause, so a signal
// received during a cycle ends the loop right after it. Run treats
// cancellation as a normal stop and returns nil.
//
// # Observability
//
// The package exports Prometheus metrics:
//   - systracker_snapshot_duration_seconds: Time per cycle
//   - systracker_snapshot_total{status}: Cycles by outcome
//   - systracker_collector_duration_seconds{collector}: Per-collector timing
//   - systracker_collector_errors_total{collector}: Collector failures
//   - systracker_usage_percent{resource}: Last CPU, memory and disk usage
//   - systracker_network_bytes{direction}: Last network byte counters
//   - systracker_processes: Last process count
//   - systracker_temperature_celsius{group,label}: Last sensor readings
//
// No HTTP listener is started; WriteMetrics flushes the registry to a
// node_exporter textfile.
package snapshotter
