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
	"strings"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/store"
)

// AddToCookbook saves a recipe to a user's cookbook.
func (m *Manager) AddToCookbook(ctx context.Context, recipeID int64, username string) (*recipe.CookbookEntry, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.BadRequest("username is required")
	}
	return store.NewCookbook(m.db).Add(ctx, recipeID, username)
}

// RemoveFromCookbook removes a recipe from a user's cookbook.
func (m *Manager) RemoveFromCookbook(ctx context.Context, recipeID int64, username string) (*recipe.CookbookRemoval, error) {
	return store.NewCookbook(m.db).Remove(ctx, recipeID, username)
}

// GetCookbook lists the recipes a user has saved.
func (m *Manager) GetCookbook(ctx context.Context, username string) ([]recipe.SimpleRecipe, error) {
	return store.NewCookbook(m.db).List(ctx, username)
}
