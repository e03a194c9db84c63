/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/logging"
)

const (
	name           = "systracker"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with the process arguments.
// SIGINT and SIGTERM cancel the command context; an interrupted monitor
// loop exits 0. This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			slog.Debug("received interrupt signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to the JSON or YAML config file (missing file means built-in defaults)",
			Sources: cli.EnvVars("SYSTRACKER_CONFIG"),
			Value:   defaults.ConfigFile,
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Diagnostic log level (debug, info, warn, error)",
			Sources: cli.EnvVars(logging.EnvLogLevel),
			Value:   "info",
		},
		&cli.StringFlag{
			Name:    "log-dir",
			Usage:   "Directory for the daily event log (default: config log_dir)",
			Sources: cli.EnvVars("SYSTRACKER_LOG_DIR"),
		},
		&cli.BoolFlag{
			Name:    "journal",
			Usage:   "Also forward events to the systemd journal when available",
			Sources: cli.EnvVars("SYSTRACKER_JOURNAL"),
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write Prometheus metrics to this file in textfile collector format",
			Sources: cli.EnvVars("SYSTRACKER_METRICS_FILE"),
		},
	}

	return &cli.Command{
		Name:                  name,
		Usage:                 "Monitor CPU, memory, disk, network, processes and temperatures",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Prints a snapshot of system resource usage, raises alerts when CPU,
memory or disk usage crosses its configured threshold, and records every
reading in a daily event log.

# Examples

Single snapshot:
  systracker

Continuous monitoring every 10 seconds:
  systracker -c -i 10

Continuous JSON output with a metrics textfile:
  systracker -c --format json --metrics-file /var/lib/node_exporter/systracker.prom`,
		Flags:    append(flags, monitorFlags()...),
		Before:   initLogger,
		Action:   monitorAction,
		Commands: []*cli.Command{exportCmd()},
	}
}

// initLogger configures slog after flags are parsed so overrides like
// --log-level take effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
	return ctx, nil
}
