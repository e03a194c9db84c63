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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"CPUSampleInterval", CPUSampleInterval, 100 * time.Millisecond, 5 * time.Second},
		{"UpdateInterval", UpdateInterval, 1 * time.Second, 60 * time.Second},
		{"CLISnapshotTimeout", CLISnapshotTimeout, 30 * time.Second, 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestThresholdOrdering(t *testing.T) {
	if CPUThreshold >= MemoryThreshold || MemoryThreshold >= DiskThreshold {
		t.Errorf("expected cpu < memory < disk thresholds, got %v/%v/%v",
			CPUThreshold, MemoryThreshold, DiskThreshold)
	}
	for _, v := range []float64{CPUThreshold, MemoryThreshold, DiskThreshold} {
		if v <= 0 || v > 100 {
			t.Errorf("threshold %v outside (0, 100]", v)
		}
	}
}

func TestSampleWindowShorterThanInterval(t *testing.T) {
	if CPUSampleInterval >= UpdateInterval {
		t.Errorf("CPUSampleInterval (%v) should be shorter than UpdateInterval (%v)",
			CPUSampleInterval, UpdateInterval)
	}
}
