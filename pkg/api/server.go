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

package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/recipebox/pkg/auth"
	"github.com/mchmarny/recipebox/pkg/config"
	"github.com/mchmarny/recipebox/pkg/logging"
	"github.com/mchmarny/recipebox/pkg/server"
)

const (
	name           = "recipeboxd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mchmarny/recipebox/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve wires the application from cfg and serves until ctx is done or the
// process receives SIGINT or SIGTERM.
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"driver", cfg.Database.Driver,
	)

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required to serve")
	}
	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			slog.Warn("failed to close application", "error", cerr)
		}
	}()

	h := NewHandler(app.Manager, app.Users, tokens)

	scfg := server.NewConfig()
	scfg.Port = cfg.Port
	scfg.ShutdownTimeout = cfg.ShutdownTimeout

	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(scfg),
		server.WithReadiness(app.Ping),
		server.WithRoutes(h.Routes),
	}
	if app.Images != nil {
		opts = append(opts, server.WithRoutes(MountFiles(app.ImagesPath, app.Images.Handler())))
	}

	if err := server.New(opts...).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
