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

import "time"

// Handler timeouts for HTTP request processing.
const (
	// RecipeHandlerTimeout is the timeout for recipe CRUD requests.
	RecipeHandlerTimeout = 30 * time.Second

	// RecipeImportTimeout is the timeout for text and photo import requests.
	// Longer than RecipeHandlerTimeout because OCR and text understanding are
	// remote model calls.
	RecipeImportTimeout = 90 * time.Second

	// ImageHandlerTimeout is the timeout for image upload and delete requests.
	ImageHandlerTimeout = 60 * time.Second

	// ImageCleanupTimeout bounds the best-effort image deletion that follows a
	// recipe delete.
	ImageCleanupTimeout = 15 * time.Second
)

// Request limits.
const (
	// MaxRecipeBodyBytes caps JSON request bodies.
	MaxRecipeBodyBytes = 1 << 20

	// MaxImageUploadBytes caps multipart image uploads.
	MaxImageUploadBytes = 10 << 20

	// MaxImagePixels caps the decoded width times height of an upload.
	MaxImagePixels = 40_000_000

	// MinRecipeTextLength is the shortest raw text accepted for import.
	MinRecipeTextLength = 10
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 120 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Database timeouts and pool settings.
const (
	// DBConnectTimeout bounds the startup connectivity retries.
	DBConnectTimeout = 30 * time.Second

	// DBBusyTimeout is the SQLite busy_timeout in milliseconds.
	DBBusyTimeout = 5000

	// DBMaxOpenConns is the Postgres connection pool size.
	DBMaxOpenConns = 10

	// DBConnMaxLifetime recycles Postgres connections.
	DBConnMaxLifetime = 30 * time.Minute
)

// Auth defaults.
const (
	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL = 24 * time.Hour
)

// Image rendition widths in pixels.
const (
	ImageWidthSmall  = 240
	ImageWidthMedium = 640
	ImageWidthLarge  = 1280

	// ImageJPEGQuality is the encoder quality for all renditions.
	ImageJPEGQuality = 85
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// ModelRequestTimeout is the timeout for a single OCR or text-understanding call.
	ModelRequestTimeout = 60 * time.Second
)

const (
	// ServerRateLimit is the sustained request rate across all API routes.
	ServerRateLimit = 100

	// ServerRateLimitBurst is the token bucket size for ServerRateLimit.
	ServerRateLimitBurst = 200

	// ServerPort is the listen port when PORT is unset.
	ServerPort = 8080
)
