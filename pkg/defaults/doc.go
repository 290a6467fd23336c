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

// Package defaults provides centralized configuration constants for recipebox.
//
// This package defines timeout values, request limits, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Database: connect timeout, pool sizing
//   - Images: rendition widths and encoder quality
//   - HTTP client timeouts: For outbound model calls
//
// # Usage
//
//	import "github.com/mchmarny/recipebox/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecipeHandlerTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - HTTP handlers: 30s for CRUD, 90s for imports (remote model calls)
//   - Handler timeouts must stay below ServerWriteTimeout
//   - Server shutdown: 30s for graceful shutdown
package defaults
