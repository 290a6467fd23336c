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

// Package logging configures slog for recipebox binaries.
//
// Logs are JSON on stderr. Every record carries the module and version of
// the emitting binary. Debug level also records the source location.
//
// Levels are parsed case-insensitively from debug, info, warn (or warning)
// and error. Anything else means info. LOG_LEVEL supplies the level when
// none is passed explicitly:
//
//	LOG_LEVEL=debug recipebox export --id 12
//
// Install the default logger once at startup:
//
//	logging.SetDefaultStructuredLoggerWithLevel("recipeboxd", version, cfg.LogLevel)
//
// Libraries that only accept a *log.Logger, such as net/http and the GORM
// logger, get an adapter writing through the default handler:
//
//	srv.ErrorLog = logging.NewLogLogger(slog.LevelWarn, false)
//
// A record looks like:
//
//	{"time":"2025-01-15T10:30:00Z","level":"INFO","msg":"recipe imported","module":"recipebox","version":"v1.0.0","id":42}
package logging
