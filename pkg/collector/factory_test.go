package collector

import (
	"context"
	"testing"
	"time"

	"github.com/NVIDIA/systracker/pkg/collector/host"
	"github.com/NVIDIA/systracker/pkg/collector/process"
	"github.com/NVIDIA/systracker/pkg/collector/sensors"
	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/measurement"
)

type stubHost struct{}

func (stubHost) CPUPercent(context.Context, time.Duration) (float64, error) { return 25, nil }
func (stubHost) CPUCores(context.Context) (int, error)                      { return 4, nil }
func (stubHost) Memory(context.Context) (host.MemoryStats, error) {
	return host.MemoryStats{Total: 8, Used: 2, Available: 6, Percent: 25}, nil
}
func (stubHost) Disk(_ context.Context, path string) (host.DiskStats, error) {
	return host.DiskStats{Path: path, Total: 10, Used: 5, Free: 5, Percent: 50}, nil
}
func (stubHost) Network(context.Context) (host.NetworkStats, error) {
	return host.NetworkStats{BytesSent: 1}, nil
}

type stubProcs struct{}

func (stubProcs) Processes(context.Context) ([]process.Handle, error) { return nil, nil }
func (stubProcs) PIDs(context.Context) ([]int32, error)               { return []int32{1}, nil }

type stubSensors struct{}

func (stubSensors) Temperatures(context.Context) ([]sensors.Stat, error) { return nil, nil }

func TestNewDefaultFactory_Defaults(t *testing.T) {
	f := NewDefaultFactory()
	if f.DiskPath != "/" {
		t.Errorf("DiskPath = %q, want /", f.DiskPath)
	}
	if f.ProcessLimit != 5 {
		t.Errorf("ProcessLimit = %d, want 5", f.ProcessLimit)
	}
	if f.Events == nil {
		t.Error("Events is nil")
	}
}

func TestNewDefaultFactory_Options(t *testing.T) {
	f := NewDefaultFactory(WithDiskPath("/data"), WithProcessLimit(3))
	if f.DiskPath != "/data" || f.ProcessLimit != 3 {
		t.Errorf("options not applied: %+v", f)
	}

	pc, ok := f.CreateProcessCollector().(*process.Collector)
	if !ok {
		t.Fatal("expected *process.Collector")
	}
	if pc.Limit != 3 {
		t.Errorf("Limit = %d, want 3", pc.Limit)
	}
}

func TestCreate_AllTypes(t *testing.T) {
	f := NewDefaultFactory(
		WithDiskPath("/data"),
		WithHostSource(stubHost{}),
		WithProcessSource(stubProcs{}),
		WithSensorSource(stubSensors{}),
	)

	for _, typ := range measurement.Types {
		t.Run(string(typ), func(t *testing.T) {
			c, err := Create(f, typ)
			if err != nil {
				t.Fatalf("Create(%s) error: %v", typ, err)
			}
			m, err := c.Collect(context.Background())
			if err != nil {
				t.Fatalf("Collect error: %v", err)
			}
			if m.Type != typ {
				t.Errorf("Type = %s, want %s", m.Type, typ)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("invalid measurement: %v", err)
			}
		})
	}
}

func TestCreate_DiskUsesConfiguredPath(t *testing.T) {
	f := NewDefaultFactory(WithDiskPath("/data"), WithHostSource(stubHost{}))

	m, err := f.CreateDiskCollector().Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	path, err := m.GetSubtype(measurement.SubtypeUsage).GetString(measurement.KeyPath)
	if err != nil {
		t.Fatal(err)
	}
	if path != "/data" {
		t.Errorf("path = %q, want /data", path)
	}
}

func TestCreate_UnknownType(t *testing.T) {
	_, err := Create(NewDefaultFactory(), measurement.Type("gpu"))
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %q, want %q", errors.CodeOf(err), errors.ErrCodeNotFound)
	}
}
