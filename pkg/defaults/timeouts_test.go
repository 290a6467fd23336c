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
		// Handler timeouts
		{"RecipeHandlerTimeout", RecipeHandlerTimeout, 10 * time.Second, 60 * time.Second},
		{"RecipeImportTimeout", RecipeImportTimeout, 30 * time.Second, 120 * time.Second},
		{"ImageHandlerTimeout", ImageHandlerTimeout, 30 * time.Second, 120 * time.Second},
		{"ImageCleanupTimeout", ImageCleanupTimeout, 5 * time.Second, 60 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 180 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// Database
		{"DBConnectTimeout", DBConnectTimeout, 5 * time.Second, 120 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"ModelRequestTimeout", ModelRequestTimeout, 10 * time.Second, 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestHandlerTimeoutsFitWriteTimeout(t *testing.T) {
	// Handlers must finish before the server gives up writing the response
	for name, d := range map[string]time.Duration{
		"RecipeHandlerTimeout": RecipeHandlerTimeout,
		"RecipeImportTimeout":  RecipeImportTimeout,
		"ImageHandlerTimeout":  ImageHandlerTimeout,
	} {
		if d >= ServerWriteTimeout {
			t.Errorf("%s (%v) should be less than ServerWriteTimeout (%v)", name, d, ServerWriteTimeout)
		}
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	// Read timeout should be shorter than write timeout
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}

	if ServerReadHeaderTimeout > ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should not exceed ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
}

func TestImageWidthsAscending(t *testing.T) {
	if !(ImageWidthSmall < ImageWidthMedium && ImageWidthMedium < ImageWidthLarge) {
		t.Errorf("image widths must ascend: %d, %d, %d", ImageWidthSmall, ImageWidthMedium, ImageWidthLarge)
	}
}
