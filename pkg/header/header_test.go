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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitAt(t *testing.T) {
	at := time.Date(2025, 11, 25, 16, 0, 0, 0, time.FixedZone("CET", 3600))

	h := Header{Metadata: map[string]string{KeyHost: "stale"}}
	h.InitAt(KindSnapshot, "systracker/v1", "v0.1.0", at)

	assert.Equal(t, KindSnapshot, h.Kind)
	assert.Equal(t, "systracker/v1", h.APIVersion)
	assert.Equal(t, "2025-11-25T15:00:00Z", h.Metadata[KeyTimestamp])
	assert.Equal(t, "v0.1.0", h.Metadata[KeyVersion])
	_, ok := h.Metadata[KeyHost]
	assert.False(t, ok, "metadata should be reset")
}

func TestInitAtWithoutVersion(t *testing.T) {
	var h Header
	h.InitAt(KindSnapshot, "systracker/v1", "", time.Now())

	_, ok := h.Metadata[KeyVersion]
	assert.False(t, ok, "version key should be omitted when empty")
	assert.NotEmpty(t, h.Metadata[KeyTimestamp])
}
