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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/recipebox/pkg/api"
	"github.com/mchmarny/recipebox/pkg/auth"
	"github.com/mchmarny/recipebox/pkg/store"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the recipe HTTP API server",
		Description: `Serve the REST API until SIGINT or SIGTERM is received.

The database schema is migrated on startup. JWT_SECRET must be set.
OPENAI_API_KEY enables text import, GEMINI_API_KEY enables photo import and
IMAGE_DIR or IMAGE_BUCKET enables recipe images.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return api.Serve(ctx, cfg)
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "admin",
				Usage: "Grant the admin role to this existing user (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "revoke",
				Usage: "Remove the admin role from this existing user (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := store.Open(ctx, cfg.Store())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(db); err != nil {
					slog.Warn("failed to close database", "error", err)
				}
			}()

			if err := store.Migrate(ctx, db, &auth.User{}); err != nil {
				return err
			}
			slog.Info("schema migrated", "driver", cfg.Database.Driver)

			users := auth.NewUsers(db)
			for _, u := range cmd.StringSlice("admin") {
				if _, err := users.SetAdmin(ctx, u, true); err != nil {
					return fmt.Errorf("failed to grant admin to %q: %w", u, err)
				}
				slog.Info("admin granted", "username", u)
			}
			for _, u := range cmd.StringSlice("revoke") {
				if _, err := users.SetAdmin(ctx, u, false); err != nil {
					return fmt.Errorf("failed to revoke admin from %q: %w", u, err)
				}
				slog.Info("admin revoked", "username", u)
			}
			return nil
		},
	}
}
