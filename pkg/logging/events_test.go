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

package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestEventLogger_Channels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := &clock{t: time.Date(2025, 1, 15, 10, 30, 0, 123_000_000, time.Local)}
	var console bytes.Buffer

	l, err := NewEventLogger(dir, WithConsole(&console), WithClock(c.now))
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, filepath.Join(dir, "tracker_20250115.log"), l.Path())

	l.Stats("CPU", "12.5%")
	l.Alert("CPU usage is 91.00% (threshold: 80.00%)")
	l.Error("disk read failed")

	want := []string{
		"2025-01-15 10:30:00,123 - SystemTracker - INFO - CPU: 12.5%",
		"2025-01-15 10:30:00,123 - SystemTracker - WARNING - ALERT: CPU usage is 91.00% (threshold: 80.00%)",
		"2025-01-15 10:30:00,123 - SystemTracker - ERROR - ERROR: disk read failed",
	}
	assert.Equal(t, want, readLines(t, l.Path()))
	assert.Equal(t, strings.Join(want, "\n")+"\n", console.String())
}

func TestEventLogger_AppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	c := &clock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local)}
	path := filepath.Join(dir, FileName(c.t))
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o600))

	l, err := NewEventLogger(dir, WithConsole(nil), WithClock(c.now))
	require.NoError(t, err)
	l.Stats("Memory", "40%")
	require.NoError(t, l.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "previous", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "INFO - Memory: 40%"))
}

func TestEventLogger_KeepsOpeningDayFile(t *testing.T) {
	dir := t.TempDir()
	c := &clock{t: time.Date(2025, 3, 1, 23, 59, 59, 0, time.Local)}

	l, err := NewEventLogger(dir, WithConsole(nil), WithClock(c.now))
	require.NoError(t, err)
	defer l.Close()

	l.Stats("CPU", "1")
	c.set(c.t.Add(2 * time.Second))
	l.Stats("CPU", "2")

	lines := readLines(t, filepath.Join(dir, "tracker_20250301.log"))
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2025-03-02 00:00:01,000"))
	assert.NoFileExists(t, filepath.Join(dir, "tracker_20250302.log"))
	assert.Equal(t, filepath.Join(dir, "tracker_20250301.log"), l.Path())
}

func TestEventLogger_LevelFilter(t *testing.T) {
	var console bytes.Buffer
	l, err := NewEventLogger(t.TempDir(), WithConsole(&console), WithLevel(slog.LevelWarn))
	require.NoError(t, err)
	defer l.Close()

	l.Stats("CPU", "ignored")
	l.Alert("kept")
	assert.NotContains(t, console.String(), "ignored")
	assert.Contains(t, console.String(), "WARNING - ALERT: kept")
}

func TestEventLogger_SlogAttrs(t *testing.T) {
	var console bytes.Buffer
	l, err := NewEventLogger(t.TempDir(), WithConsole(&console))
	require.NoError(t, err)
	defer l.Close()

	l.logger.WithGroup("disk").With("path", "/").Info("usage", "percent", 42)
	assert.Contains(t, console.String(), "INFO - usage disk.path=/ disk.percent=42")
}

func TestEventLogger_AfterCloseStillEchoes(t *testing.T) {
	var console bytes.Buffer
	l, err := NewEventLogger(t.TempDir(), WithConsole(&console))
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	l.Error("late")
	assert.Contains(t, console.String(), "ERROR: late")
	assert.Empty(t, l.Path())
}

func TestEventLogger_ConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	l, err := NewEventLogger(dir, WithConsole(nil))
	require.NoError(t, err)
	defer l.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Stats("Network", "sample")
		}()
	}
	wg.Wait()

	lines := readLines(t, l.Path())
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, "INFO - Network: sample"), line)
	}
}

func TestNewEventLogger_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := NewEventLogger(filepath.Join(file, "sub"))
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	Discard.Stats("a", "b")
	Discard.Alert("a")
	Discard.Error("a")
}
