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

// Package cli implements the recipebox operator command line.
//
// # Commands
//
// serve - Run the HTTP API server:
//
//	recipebox serve --config recipebox.yaml
//
// Serves the REST API until SIGINT or SIGTERM. Configuration comes from the
// optional YAML file and environment overrides (DATABASE_DSN, JWT_SECRET,
// OPENAI_API_KEY, GEMINI_API_KEY, IMAGE_DIR, IMAGE_BUCKET and friends).
//
// migrate - Create or update the database schema:
//
//	recipebox migrate --admin alice
//
// Applies the schema and, when --admin is given, grants that user the admin
// role.
//
// parse - Turn free-form recipe text into a structured recipe:
//
//	recipebox parse --file pancakes.txt --format yaml --output pancakes.yaml
//
// Requires OPENAI_API_KEY. Nothing is persisted.
//
// import - Save a recipe file for an owner:
//
//	recipebox import --file pancakes.yaml --owner alice
//
// Any ids in the file are ignored and the recipe is always created new.
//
// export - Write a stored recipe to a file:
//
//	recipebox export --id 42 --format json --output pancakes.json
//
// Exported files can be imported again unchanged.
//
// # Global Flags
//
//	--config, -c   YAML config file (env: RECIPEBOX_CONFIG)
//	--log-level    Log level: debug, info, warn, error (env: LOG_LEVEL)
//
// # Output Formats
//
// YAML (default), JSON, and table for terminal viewing. Table output cannot
// be read back by import.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/recipebox/pkg/cli.version=1.0.0'"
package cli
