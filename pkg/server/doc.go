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

// Package server provides the HTTP plumbing shared by recipebox services:
// configuration from the environment, a chi router with system endpoints,
// the API middleware chain and graceful shutdown.
//
// # Endpoints
//
// Every server exposes:
//
//	GET /          - name, version, readiness and registered routes
//	GET /health    - liveness, always 200 while the process serves
//	GET /ready     - readiness, 503 until started or when a readiness check fails
//	GET /metrics   - Prometheus metrics
//
// Application routes are mounted with WithRoutes and run behind the
// middleware chain, outermost first:
//
//	metrics -> version -> request id -> panic recovery -> rate limit -> logging
//
// # Errors
//
// All errors use one envelope:
//
//	{
//	  "code": "NOT_FOUND",
//	  "status": 404,
//	  "message": "recipe not found: 42",
//	  "details": {"entity": "recipe", "id": 42},
//	  "requestId": "4f0c...",
//	  "timestamp": "2026-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps a pkg/errors StructuredError to that envelope and
// its HTTP status. Causes of internal and transaction errors are logged
// and never returned to the client.
//
// # Usage
//
//	s := server.New(
//		server.WithName("recipeboxd"),
//		server.WithVersion(version),
//		server.WithRoutes(func(r chi.Router) {
//			r.Get("/v1/recipes", listRecipes)
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		return err
//	}
//
// # Configuration
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
package server
