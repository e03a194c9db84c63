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

// Package logging provides the two logging surfaces of systracker.
//
// # Diagnostic logging
//
// Internal diagnostics go through log/slog as JSON on stderr:
//
//	logging.SetDefaultStructuredLoggerWithLevel("systracker", version, "info")
//	slog.Debug("collector started", "type", "cpu")
//
// The CLI takes the level from --log-level or LOG_LEVEL (debug, info, warn,
// error). Debug adds source locations.
//
// # Event log
//
// EventLogger is the user-facing record of a monitoring session. It writes
// to <dir>/tracker_<YYYYMMDD>.log in append mode, named for the day it was
// opened, and echoes every line to the console:
//
//	2025-01-15 10:30:00,123 - SystemTracker - INFO - CPU: 12.50%
//	2025-01-15 10:30:05,004 - SystemTracker - WARNING - ALERT: CPU usage is 91.00% (threshold: 80.00%)
//	2025-01-15 10:30:05,010 - SystemTracker - ERROR - ERROR: failed to read disk usage: ...
//
// Three channels are exposed: Stats, Alert and Error. Writes are serialized
// so one logger may be shared across goroutines. WithJournal additionally
// forwards events to journald when the journal socket exists.
//
// EventLogger is a slog.Handler underneath; attributes render as key=value
// pairs after the message.
package logging
