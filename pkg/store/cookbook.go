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

package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

// Cookbook manages the recipe/user membership edges.
type Cookbook struct {
	db *gorm.DB
}

// NewCookbook returns a cookbook adapter bound to db.
func NewCookbook(db *gorm.DB) *Cookbook {
	return &Cookbook{db: db}
}

// Add saves a recipe to a user's cookbook. Adding the same pair twice is a
// CONFLICT.
func (s *Cookbook) Add(ctx context.Context, recipeID int64, username string) (*recipe.CookbookEntry, error) {
	if _, err := NewRecipes(s.db).Owner(ctx, recipeID); err != nil {
		return nil, err
	}

	entry := recipe.CookbookEntry{RecipeID: recipeID, Username: username}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if IsDuplicate(err) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeConflict,
				fmt.Sprintf("recipe %d is already in the cookbook of %s", recipeID, username),
				map[string]any{"recipeId": recipeID, "username": username})
		}
		return nil, fmt.Errorf("failed to add recipe %d to cookbook: %w", recipeID, err)
	}
	return &entry, nil
}

// Remove deletes a cookbook entry.
func (s *Cookbook) Remove(ctx context.Context, recipeID int64, username string) (*recipe.CookbookRemoval, error) {
	res := s.db.WithContext(ctx).
		Where("recipe_id = ? AND username = ?", recipeID, username).
		Delete(&recipe.CookbookEntry{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to remove recipe %d from cookbook: %w", recipeID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("cookbook entry", fmt.Sprintf("%d/%s", recipeID, username))
	}
	return &recipe.CookbookRemoval{
		Removed: recipe.CookbookKey{RecipeID: recipeID, Username: username},
	}, nil
}

// List returns the recipes in a user's cookbook in the order they were saved.
func (s *Cookbook) List(ctx context.Context, username string) ([]recipe.SimpleRecipe, error) {
	list := make([]recipe.SimpleRecipe, 0)
	err := s.db.WithContext(ctx).
		Model(&recipe.Recipe{}).
		Select("recipes.*").
		Joins("JOIN cookbook_entries ON cookbook_entries.recipe_id = recipes.id").
		Where("cookbook_entries.username = ?", username).
		Order("cookbook_entries.created_at ASC, recipes.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cookbook of %s: %w", username, err)
	}
	return list, nil
}
