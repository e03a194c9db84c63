// Package cli implements the systracker command-line interface.
//
// # Overview
//
// systracker samples CPU, memory, disk, network, process and temperature
// statistics from the local host, prints a formatted snapshot, raises
// threshold alerts and records every reading in a daily event log.
//
// # Commands
//
// (default) - Print a snapshot, or keep printing with --continuous:
//
//	systracker [-c] [-i SECONDS] [--format text|json|yaml|table]
//
// Categories are enabled by the display.show_* flags of the config file.
// With a structured --format the snapshot document is written to stdout
// and alert notices go to stderr.
//
// export - Collect samples and write them to a file:
//
//	systracker export [--samples N] [--interval SECONDS] [--format json|csv|yaml]
//	                  [--output-dir DIR] [--output FILE] [--fields PATTERN]...
//
// # Global Flags
//
//	--config         Config file, JSON or YAML (default: config.json)
//	--log-level      Diagnostic log level (default: info)
//	--log-dir        Event log directory (default: config log_dir)
//	--journal        Forward events to the systemd journal
//	--metrics-file   Prometheus textfile output path
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Environment Variables
//
//	LOG_LEVEL                Diagnostic log level
//	SYSTRACKER_CONFIG        Config file path
//	SYSTRACKER_LOG_DIR       Event log directory
//	SYSTRACKER_JOURNAL       Enable journal forwarding
//	SYSTRACKER_METRICS_FILE  Metrics textfile path
//	SYSTRACKER_EXPORT_DIR    Export directory
//	SYSTRACKER_HOSTNAME      Host name recorded in snapshots
//
// # Exit Codes
//
//	0  Success, including an interrupted continuous run
//	1  Invalid arguments, unreadable config, or export failure
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/snapshotter - Snapshot cycles and the monitor loop
//   - pkg/exporter - JSON, CSV and YAML export
//   - pkg/config - Config file loading
//   - pkg/logging - Event log and structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/systracker/pkg/cli.version=1.0.0'"
package cli
