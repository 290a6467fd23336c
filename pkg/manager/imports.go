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
	"log/slog"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

// ImportFromText parses free text into a recipe and saves it for owner.
func (m *Manager) ImportFromText(ctx context.Context, owner, text string) (*recipe.Recipe, error) {
	if m.parser == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnavailable, "text import is not configured")
	}
	in, err := m.parser.TextToRecipe(ctx, text, owner)
	if err != nil {
		return nil, err
	}
	r, err := m.SaveRecipe(ctx, owner, *in)
	if err != nil {
		return nil, err
	}
	slog.Info("recipe imported", "recipeId", r.ID, "owner", owner, "source", "text")
	return r, nil
}

// ImportFromPhoto reads the recipe text in a photo, then imports it as text.
func (m *Manager) ImportFromPhoto(ctx context.Context, owner string, photo []byte) (*recipe.Recipe, error) {
	if m.photos == nil {
		return nil, apperrors.New(apperrors.ErrCodeUnavailable, "photo import is not configured")
	}
	text, err := m.photos.TextFromPhoto(ctx, photo)
	if err != nil {
		return nil, err
	}
	return m.ImportFromText(ctx, owner, text)
}
