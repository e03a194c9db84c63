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

package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/serializer"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// SupportedFormats lists the accepted export formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatCSV), string(FormatYAML)}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported export format %q (want one of %s)", s, strings.Join(SupportedFormats(), ", ")))
	}
}

const fileTimestampLayout = "20060102150405"

// Exporter writes record lists to files in an output directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the time used in default file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// New returns an Exporter writing under dir ("exports" when empty).
func New(dir string, opts ...Option) *Exporter {
	if dir == "" {
		dir = defaults.ExportDir
	}
	e := &Exporter{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// DefaultFilename is tracker_data_<YYYYMMDDHHMMSS>.<ext> for the current time.
func (e *Exporter) DefaultFilename(f Format) string {
	return "tracker_data_" + e.now().Format(fileTimestampLayout) + "." + string(f)
}

// Export writes records in format f and returns the written path.
// An empty filename selects DefaultFilename.
func (e *Exporter) Export(ctx context.Context, f Format, records []Record, filename string) (string, error) {
	switch f {
	case FormatJSON:
		return e.exportSerialized(ctx, serializer.FormatJSON, f, records, filename)
	case FormatYAML:
		return e.exportSerialized(ctx, serializer.FormatYAML, f, records, filename)
	case FormatCSV:
		return e.ExportCSV(records, filename)
	default:
		_, err := ParseFormat(string(f))
		return "", err
	}
}

// ExportJSON writes records as an indented JSON array.
func (e *Exporter) ExportJSON(records []Record, filename string) (string, error) {
	return e.Export(context.Background(), FormatJSON, records, filename)
}

// ExportYAML writes records as a YAML sequence.
func (e *Exporter) ExportYAML(records []Record, filename string) (string, error) {
	return e.Export(context.Background(), FormatYAML, records, filename)
}

// ExportCSV writes a header row taken from the first record followed by one
// row per record. All records must carry the same fields in the same order.
func (e *Exporter) ExportCSV(records []Record, filename string) (string, error) {
	if len(records) == 0 {
		return "", errors.New(errors.ErrCodeInvalidRequest, "csv export requires at least one record")
	}
	header := records[0].Names()
	for i, r := range records[1:] {
		if !slices.Equal(header, r.Names()) {
			return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("record %d fields differ from header", i+1),
				map[string]any{"header": header, "fields": r.Names()})
		}
	}

	path, err := e.prepare(FormatCSV, filename)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", exportErr(path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return "", exportErr(path, err)
	}
	row := make([]string, len(header))
	for _, r := range records {
		for i, f := range r {
			row[i] = formatCell(f.Value)
		}
		if err := w.Write(row); err != nil {
			return "", exportErr(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", exportErr(path, err)
	}
	if err := file.Close(); err != nil {
		return "", exportErr(path, err)
	}

	slog.Debug("exported records", "path", path, "format", FormatCSV, "count", len(records))
	return path, nil
}

func (e *Exporter) exportSerialized(ctx context.Context, sf serializer.Format, f Format, records []Record, filename string) (string, error) {
	path, err := e.prepare(f, filename)
	if err != nil {
		return "", err
	}

	w, err := serializer.NewFileWriter(sf, path)
	if err != nil {
		return "", exportErr(path, err)
	}
	if records == nil {
		records = []Record{}
	}
	if err := w.Serialize(ctx, records); err != nil {
		_ = w.Close()
		return "", exportErr(path, err)
	}
	if err := w.Close(); err != nil {
		return "", exportErr(path, err)
	}

	slog.Debug("exported records", "path", path, "format", f, "count", len(records))
	return path, nil
}

// prepare creates the output directory and resolves the target path.
func (e *Exporter) prepare(f Format, filename string) (string, error) {
	if filename == "" {
		filename = e.DefaultFilename(f)
	}
	path := filename
	if !filepath.IsAbs(filename) {
		path = filepath.Join(e.dir, filename)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", exportErr(path, err)
	}
	return path, nil
}

func exportErr(path string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeExport, "failed to export "+path, err,
		map[string]any{"path": path})
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case *float64:
		if t == nil {
			return ""
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
