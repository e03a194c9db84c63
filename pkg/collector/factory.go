package collector

import (
	"context"
	"fmt"

	"github.com/NVIDIA/systracker/pkg/collector/host"
	"github.com/NVIDIA/systracker/pkg/collector/process"
	"github.com/NVIDIA/systracker/pkg/collector/sensors"
	"github.com/NVIDIA/systracker/pkg/defaults"
	"github.com/NVIDIA/systracker/pkg/errors"
	"github.com/NVIDIA/systracker/pkg/logging"
	"github.com/NVIDIA/systracker/pkg/measurement"
)

// Collector gathers one category of host data.
type Collector interface {
	Collect(ctx context.Context) (*measurement.Measurement, error)
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateCPUCollector() Collector
	CreateMemoryCollector() Collector
	CreateDiskCollector() Collector
	CreateNetworkCollector() Collector
	CreateProcessCollector() Collector
	CreateTemperatureCollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
// Nil sources fall back to the gopsutil implementations.
type DefaultFactory struct {
	DiskPath      string
	ProcessLimit  int
	Events        logging.Events
	HostSource    host.Source
	ProcessSource process.Source
	SensorSource  sensors.Source
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithDiskPath sets the mount point sampled by the disk collector.
func WithDiskPath(path string) Option {
	return func(f *DefaultFactory) {
		f.DiskPath = path
	}
}

// WithProcessLimit sets how many processes the process collector ranks.
func WithProcessLimit(n int) Option {
	return func(f *DefaultFactory) {
		f.ProcessLimit = n
	}
}

// WithEvents sets the sink collectors report read failures to.
func WithEvents(e logging.Events) Option {
	return func(f *DefaultFactory) {
		f.Events = e
	}
}

// WithHostSource replaces the CPU/memory/disk/network source.
func WithHostSource(s host.Source) Option {
	return func(f *DefaultFactory) {
		f.HostSource = s
	}
}

// WithProcessSource replaces the process source.
func WithProcessSource(s process.Source) Option {
	return func(f *DefaultFactory) {
		f.ProcessSource = s
	}
}

// WithSensorSource replaces the temperature source.
func WithSensorSource(s sensors.Source) Option {
	return func(f *DefaultFactory) {
		f.SensorSource = s
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		DiskPath:     defaults.DiskPath,
		ProcessLimit: defaults.ProcessLimit,
		Events:       logging.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *DefaultFactory) hostReader() *host.Reader {
	opts := []host.Option{host.WithDiskPath(f.DiskPath), host.WithEvents(f.Events)}
	if f.HostSource != nil {
		opts = append(opts, host.WithSource(f.HostSource))
	}
	return host.NewReader(opts...)
}

// CreateCPUCollector creates a CPU utilization collector.
func (f *DefaultFactory) CreateCPUCollector() Collector {
	return &host.Collector{Reader: f.hostReader(), Type: measurement.TypeCPU}
}

// CreateMemoryCollector creates a virtual memory collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector {
	return &host.Collector{Reader: f.hostReader(), Type: measurement.TypeMemory}
}

// CreateDiskCollector creates a filesystem usage collector.
func (f *DefaultFactory) CreateDiskCollector() Collector {
	return &host.Collector{Reader: f.hostReader(), Type: measurement.TypeDisk}
}

// CreateNetworkCollector creates a network counter collector.
func (f *DefaultFactory) CreateNetworkCollector() Collector {
	return &host.Collector{Reader: f.hostReader(), Type: measurement.TypeNetwork}
}

// CreateProcessCollector creates a top-processes collector.
func (f *DefaultFactory) CreateProcessCollector() Collector {
	opts := []process.Option{process.WithEvents(f.Events)}
	if f.ProcessSource != nil {
		opts = append(opts, process.WithSource(f.ProcessSource))
	}
	return &process.Collector{Ranker: process.NewRanker(opts...), Limit: f.ProcessLimit}
}

// CreateTemperatureCollector creates a temperature sensor collector.
func (f *DefaultFactory) CreateTemperatureCollector() Collector {
	r := sensors.NewReader()
	if f.SensorSource != nil {
		r.Source = f.SensorSource
	}
	return r
}

// Create returns the collector for a measurement type.
func Create(f Factory, t measurement.Type) (Collector, error) {
	switch t {
	case measurement.TypeCPU:
		return f.CreateCPUCollector(), nil
	case measurement.TypeMemory:
		return f.CreateMemoryCollector(), nil
	case measurement.TypeDisk:
		return f.CreateDiskCollector(), nil
	case measurement.TypeNetwork:
		return f.CreateNetworkCollector(), nil
	case measurement.TypeProcess:
		return f.CreateProcessCollector(), nil
	case measurement.TypeTemperature:
		return f.CreateTemperatureCollector(), nil
	default:
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("no collector for measurement type %q", t))
	}
}
