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

package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/imagestore"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/store"
)

var errNoImageStore = apperrors.New(apperrors.ErrCodeUnavailable, "image storage is not configured")

// UpdateRecipeImage resizes data, uploads the renditions and records their
// URLs on the recipe. The large rendition becomes the recipe's imageUrl.
// Renditions of the replaced image are removed afterwards on a best-effort
// basis.
func (m *Manager) UpdateRecipeImage(ctx context.Context, recipeID int64, data []byte) (*recipe.Recipe, error) {
	if m.images == nil {
		return nil, errNoImageStore
	}
	current, err := m.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	renditions, err := m.resizer.Resize(data)
	if err != nil {
		return nil, err
	}

	key := imagestore.Key(data)
	var (
		mu   sync.Mutex
		urls = make(map[imagestore.Size]string, len(renditions))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range renditions {
		g.Go(func() error {
			url, err := m.images.Upload(gctx, imagestore.Path(recipeID, key, r.Size), imagestore.ContentTypeJPEG, r.Data)
			if err != nil {
				return fmt.Errorf("failed to upload %s rendition: %w", r.Size, err)
			}
			mu.Lock()
			urls[r.Size] = url
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to store recipe image", err)
	}

	img := store.Images{
		Key: key,
		URL: urls[imagestore.SizeLarge],
		Sm:  urls[imagestore.SizeSmall],
		Md:  urls[imagestore.SizeMedium],
		Lg:  urls[imagestore.SizeLarge],
	}
	if err := m.recipes.SetImages(ctx, recipeID, img); err != nil {
		return nil, err
	}

	if current.ImageKey != "" && current.ImageKey != key {
		m.cleanupImages(ctx, recipeID, current.ImageKey)
	}

	slog.Info("recipe image updated", "recipeId", recipeID, "key", key, "renditions", len(renditions))
	return m.recipes.Get(ctx, recipeID)
}

// DeleteRecipeImage removes the stored renditions and clears the recipe's
// image URLs.
func (m *Manager) DeleteRecipeImage(ctx context.Context, recipeID int64) (*recipe.Recipe, error) {
	if m.images == nil {
		return nil, errNoImageStore
	}
	current, err := m.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if current.ImageKey != "" {
		for _, size := range imagestore.Sizes() {
			if err := m.images.Delete(ctx, imagestore.Path(recipeID, current.ImageKey, size)); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to delete recipe image", err)
			}
		}
	}
	if err := m.recipes.SetImages(ctx, recipeID, store.Images{}); err != nil {
		return nil, err
	}
	return m.recipes.Get(ctx, recipeID)
}

// cleanupImages deletes the renditions stored under key. Failures are logged
// and otherwise ignored.
func (m *Manager) cleanupImages(ctx context.Context, recipeID int64, key string) {
	if m.images == nil || key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaults.ImageCleanupTimeout)
	defer cancel()

	for _, size := range imagestore.Sizes() {
		path := imagestore.Path(recipeID, key, size)
		if err := m.images.Delete(ctx, path); err != nil {
			slog.Warn("failed to delete recipe image", "recipeId", recipeID, "path", path, "error", err)
		}
	}
}
