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

// Package config loads recipebox service configuration from an optional
// YAML file followed by environment variable overrides.
//
// Example file:
//
//	port: 8080
//	logLevel: info
//	database:
//	  driver: sqlite
//	  dsn: recipebox.db
//	auth:
//	  jwtSecret: change-me-please-now
//	  tokenTTL: 24h
//	images:
//	  dir: ./images
//	  baseUrl: http://localhost:8080/images
//
// Environment variables win over the file: PORT, LOG_LEVEL,
// SHUTDOWN_TIMEOUT_SECONDS, DATABASE_DRIVER, DATABASE_DSN, JWT_SECRET,
// TOKEN_TTL, OPENAI_API_KEY, OPENAI_MODEL, GEMINI_API_KEY, GEMINI_MODEL,
// IMAGE_BUCKET, IMAGE_DIR and IMAGE_BASE_URL.
package config
