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

// Package alert evaluates CPU, memory and disk readings against thresholds.
//
// A reading strictly greater than its threshold raises an Alert: it is
// appended to the evaluator's history, logged as "ALERT: <Type>: <message>"
// through the event log, printed as a console notice and counted in the
// systracker_alerts_total metric.
//
// History is unbounded unless WithHistoryLimit (or alert_history_limit in
// the config file) caps it, in which case the oldest alerts are dropped.
package alert
