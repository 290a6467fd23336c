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
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"gorm.io/gorm"

	"github.com/mchmarny/recipebox/pkg/auth"
	"github.com/mchmarny/recipebox/pkg/config"
	"github.com/mchmarny/recipebox/pkg/imagestore"
	"github.com/mchmarny/recipebox/pkg/manager"
	"github.com/mchmarny/recipebox/pkg/ocr"
	"github.com/mchmarny/recipebox/pkg/store"
	"github.com/mchmarny/recipebox/pkg/textparse"
)

// App holds the wired service dependencies.
type App struct {
	DB      *gorm.DB
	Manager *manager.Manager
	Users   *auth.Users

	// Images is set when a local image directory is configured and must be
	// served by this process.
	Images     *imagestore.Local
	ImagesPath string

	closers []func() error
}

// NewApp opens the database, migrates the schema and builds the manager
// with every configured collaborator.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := store.Open(ctx, cfg.Store())
	if err != nil {
		return nil, err
	}
	app := &App{DB: db}
	app.closers = append(app.closers, func() error { return store.Close(db) })

	if err := store.Migrate(ctx, db, &auth.User{}); err != nil {
		_ = app.Close()
		return nil, err
	}

	opts, err := app.options(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Manager = manager.New(db, opts...)
	app.Users = auth.NewUsers(db)
	return app, nil
}

func (a *App) options(ctx context.Context, cfg *config.Config) ([]manager.Option, error) {
	var opts []manager.Option

	switch {
	case cfg.Images.Bucket != "":
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		opts = append(opts, manager.WithImageStore(imagestore.NewGCS(client, cfg.Images.Bucket)))
		slog.Info("image store configured", "type", "gcs", "bucket", cfg.Images.Bucket)
	case cfg.Images.Dir != "":
		local, err := imagestore.NewLocal(cfg.Images.Dir, cfg.Images.BaseURL)
		if err != nil {
			return nil, err
		}
		u, err := url.Parse(cfg.Images.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid image base url %q: %w", cfg.Images.BaseURL, err)
		}
		if strings.Trim(u.Path, "/") == "" {
			return nil, fmt.Errorf("image base url %q must include a path such as /images", cfg.Images.BaseURL)
		}
		a.Images = local
		a.ImagesPath = u.Path
		opts = append(opts, manager.WithImageStore(local))
		slog.Info("image store configured", "type", "local", "dir", cfg.Images.Dir)
	default:
		slog.Warn("no image store configured, image uploads disabled")
	}

	if cfg.OpenAI.Enabled() {
		parser, err := textparse.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			return nil, err
		}
		opts = append(opts, manager.WithTextParser(parser))
	} else {
		slog.Warn("openai not configured, text import disabled")
	}

	if cfg.Gemini.Enabled() {
		extractor, err := ocr.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		opts = append(opts, manager.WithPhotoReader(extractor))
	} else {
		slog.Warn("gemini not configured, photo import disabled")
	}

	return opts, nil
}

// Ping checks database connectivity.
func (a *App) Ping(ctx context.Context) error {
	return store.Ping(ctx, a.DB)
}

// Close releases everything NewApp opened, last opened first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
