/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/systracker/pkg/alert"
	"github.com/NVIDIA/systracker/pkg/config"
	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/exporter"
	"github.com/NVIDIA/systracker/pkg/snapshotter"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "export",
		EnableShellCompletion: true,
		Usage:                 "Collect samples and export them to a JSON, CSV or YAML file",
		Description: `Takes a number of snapshots without printing them and writes one flat
record per snapshot. Each record starts with timestamp and host, followed
by <type>_<key> columns such as cpu_percent or memory_used.

The default file name is tracker_data_<YYYYMMDDHHMMSS>.<ext> in the
output directory, which is created when missing.

# Examples

Export a single sample as JSON:
  systracker export

Ten samples, two seconds apart, as CSV:
  systracker export --samples 10 --interval 2 --format csv

Only usage percentages:
  systracker export --samples 5 --fields '*_percent' --format csv`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "samples",
				Aliases: []string{"n"},
				Usage:   "Number of snapshots to take",
				Value:   1,
			},
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Seconds between samples",
				Value:   1,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Export format: %s", strings.Join(exporter.SupportedFormats(), ", ")),
				Value:   string(exporter.FormatJSON),
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"d"},
				Usage:   "Directory for the export file (default: config export_dir)",
				Sources: cli.EnvVars("SYSTRACKER_EXPORT_DIR"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "File name, relative to the output directory unless absolute",
			},
			&cli.StringSliceFlag{
				Name:  "fields",
				Usage: "Keep only fields matching these wildcard patterns (can be repeated)",
			},
		},
		Action: exportAction,
	}
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	format, err := exporter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	interval, err := resolveInterval(cmd, time.Second)
	if err != nil {
		return err
	}

	m := &snapshotter.Monitor{
		Version: version,
		Config:  s.cfg,
		Events:  s.events,
		Out:     io.Discard,
		Alerts: alert.NewEvaluator(
			alert.WithConfig(s.cfg),
			alert.WithEvents(s.events),
			alert.WithConsole(nil),
		),
	}

	snaps, err := m.Samples(ctx, cmd.Int("samples"), interval)
	if err != nil {
		return err
	}

	dir := cmd.String("output-dir")
	if dir == "" {
		dir = s.cfg.GetString(config.KeyExportDir, defaults.ExportDir)
	}

	records := snapshotter.Records(snaps, cmd.StringSlice("fields")...)

	// an interrupted run still writes the samples it took
	path, err := exporter.New(dir).Export(context.WithoutCancel(ctx), format, records, cmd.String("output"))
	if err != nil {
		return err
	}

	slog.Debug("export complete",
		slog.String("session", m.Session()),
		slog.String("path", path),
		slog.Int("records", len(records)))

	fmt.Fprintf(cmd.Root().Writer, "✓ %s export successful: %s (%d records)\n",
		strings.ToUpper(string(format)), path, len(records))

	if metricsFile := cmd.String("metrics-file"); metricsFile != "" {
		return snapshotter.WriteMetrics(metricsFile)
	}
	return nil
}
