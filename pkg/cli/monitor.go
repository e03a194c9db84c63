/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/systracker/pkg/alert"
	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/serializer"
	"github.com/NVIDIA/systracker/pkg/snapshotter"
)

func monitorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "continuous",
			Local:   true,
			Aliases: []string{"c"},
			Usage:   "Keep taking snapshots until interrupted",
		},
		&cli.IntFlag{
			Name:    "interval",
			Local:   true,
			Aliases: []string{"i"},
			Usage:   "Seconds between snapshots in continuous mode (default: config update_interval)",
		},
		&cli.StringFlag{
			Name:    "format",
			Local:   true,
			Aliases: []string{"t"},
			Usage:   "Output format: text, json, yaml, table",
			Value:   formatText,
		},
	}
}

func monitorAction(ctx context.Context, cmd *cli.Command) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	interval, err := resolveInterval(cmd, s.cfg.UpdateInterval())
	if err != nil {
		return err
	}

	m := &snapshotter.Monitor{
		Version: version,
		Config:  s.cfg,
		Events:  s.events,
		Out:     cmd.Root().Writer,
	}
	if format != "" {
		// structured output owns stdout, alerts move to stderr
		m.Out = io.Discard
		m.Serializer = serializer.NewWriter(format, cmd.Root().Writer)
		m.Alerts = alert.NewEvaluator(
			alert.WithConfig(s.cfg),
			alert.WithEvents(s.events),
			alert.WithConsole(cmd.Root().ErrWriter),
		)
	}

	metricsFile := cmd.String("metrics-file")

	if !cmd.Bool("continuous") {
		sctx, cancel := context.WithTimeout(ctx, defaults.CLISnapshotTimeout)
		defer cancel()
		if _, err := m.Snapshot(sctx); err != nil {
			return err
		}
		if metricsFile != "" {
			return snapshotter.WriteMetrics(metricsFile)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.Run(gctx, interval)
	})
	if metricsFile != "" {
		g.Go(func() error {
			return flushMetrics(gctx, metricsFile, interval)
		})
	}
	return g.Wait()
}

// flushMetrics rewrites the metrics textfile every period, and once more
// when ctx ends.
func flushMetrics(ctx context.Context, path string, period time.Duration) error {
	if period < time.Second {
		period = time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return snapshotter.WriteMetrics(path)
		case <-ticker.C:
			if err := snapshotter.WriteMetrics(path); err != nil {
				return err
			}
		}
	}
}
