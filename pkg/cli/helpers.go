/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/systracker/pkg/config"
	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/logging"
	"github.com/NVIDIA/systracker/pkg/serializer"
)

// formatText is the console rendering; it has no serializer.
const formatText = "text"

// parseOutputFormat returns the structured format selected by --format,
// or "" for the console rendering.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	value := cmd.String("format")
	if value == formatText {
		return "", nil
	}
	format := serializer.Format(value)
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", value)
	}
	return format, nil
}

// resolveInterval returns --interval in seconds when set, else def.
func resolveInterval(cmd *cli.Command, def time.Duration) (time.Duration, error) {
	if !cmd.IsSet("interval") {
		return def, nil
	}
	interval := time.Duration(cmd.Int("interval")) * time.Second
	if interval < defaults.MinUpdateInterval {
		return 0, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("interval must be at least %s, got %s", defaults.MinUpdateInterval, interval))
	}
	return interval, nil
}

// session holds what every command loads before collecting.
type session struct {
	cfg    *config.Store
	events *logging.EventLogger
}

// openSession loads the config file and opens the event log. Events are
// echoed to console unless it is nil.
func openSession(cmd *cli.Command, console io.Writer) (*session, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	dir := cmd.String("log-dir")
	if dir == "" {
		dir = cfg.GetString(config.KeyLogDir, defaults.LogDir)
	}

	events, err := logging.NewEventLogger(dir,
		logging.WithConsole(console),
		logging.WithJournal(cmd.Bool("journal")),
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("session opened",
		slog.String("config", cfg.Source()),
		slog.String("eventLog", events.Path()))

	return &session{cfg: cfg, events: events}, nil
}

// Close closes the event log.
func (s *session) Close() {
	if err := s.events.Close(); err != nil {
		slog.Warn("failed to close event log", slog.String("error", err.Error()))
	}
}
