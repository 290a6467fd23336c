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
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

// EntityRecipe is the entity name used in recipe errors.
const EntityRecipe = "recipe"

// Images holds the stored rendition URLs of a recipe and the key they were
// stored under.
type Images struct {
	Key string
	URL string
	Sm  string
	Md  string
	Lg  string
}

// Recipes reads and writes whole recipe aggregates and their scalar fields.
type Recipes struct {
	db *gorm.DB
}

// NewRecipes returns a recipe adapter bound to db.
func NewRecipes(db *gorm.DB) *Recipes {
	return &Recipes{db: db}
}

// Create inserts r together with its nested steps and ingredients in one call.
func (s *Recipes) Create(ctx context.Context, r *recipe.Recipe) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create recipe %q: %w", r.Name, err)
	}
	return nil
}

// Get returns the full aggregate. Steps are ordered by step number then id,
// ingredients by id.
func (s *Recipes) Get(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var r recipe.Recipe
	err := s.db.WithContext(ctx).
		Preload("Steps", orderSteps).
		Preload("Steps.Ingredients", orderByID).
		First(&r, id).Error
	if err != nil {
		return nil, notFound(EntityRecipe, id, err)
	}
	return &r, nil
}

// Owner returns the owner of a recipe without loading its children.
func (s *Recipes) Owner(ctx context.Context, id int64) (string, error) {
	var r recipe.Recipe
	if err := s.db.WithContext(ctx).Select("id", "owner").First(&r, id).Error; err != nil {
		return "", notFound(EntityRecipe, id, err)
	}
	return r.Owner, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	// Text matches name or description, case-insensitively.
	Text string

	// Owner restricts results to one user.
	Owner string
}

// List returns scalar fields of matching recipes ordered by id.
func (s *Recipes) List(ctx context.Context, f ListFilter) ([]recipe.SimpleRecipe, error) {
	q := s.db.WithContext(ctx).Model(&recipe.Recipe{})
	if t := strings.TrimSpace(f.Text); t != "" {
		pattern := "%" + escapeLike(strings.ToLower(t)) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if f.Owner != "" {
		q = q.Where("owner = ?", f.Owner)
	}

	list := make([]recipe.SimpleRecipe, 0)
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return list, nil
}

// UpdateScalars overwrites the recipe's scalar fields and bumps its version.
// When in.Version is positive the write only applies if the stored version
// still matches, otherwise a CONFLICT error is returned.
func (s *Recipes) UpdateScalars(ctx context.Context, id int64, in recipe.RecipeInput) error {
	q := s.db.WithContext(ctx).Model(&recipe.Recipe{}).Where("id = ?", id)
	if in.Version > 0 {
		q = q.Where("version = ?", in.Version)
	}

	res := q.Updates(map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"source_url":  in.SourceURL,
		"source_name": in.SourceName,
		"image_url":   in.ImageURL,
		"version":     gorm.Expr("version + 1"),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if in.Version > 0 {
			return apperrors.NewWithContext(apperrors.ErrCodeConflict,
				fmt.Sprintf("recipe %d was modified concurrently", id),
				map[string]any{"recipeId": id, "expectedVersion": in.Version})
		}
		return apperrors.NotFound(EntityRecipe, id)
	}
	return nil
}

// SetImages stores rendition URLs on the recipe. A zero Images clears them.
func (s *Recipes) SetImages(ctx context.Context, id int64, img Images) error {
	res := s.db.WithContext(ctx).
		Model(&recipe.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"image_url": img.URL,
			"image_sm":  img.Sm,
			"image_md":  img.Md,
			"image_lg":  img.Lg,
			"image_key": img.Key,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to set images on recipe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(EntityRecipe, id)
	}
	return nil
}

// Delete removes the recipe. Steps, ingredients and cookbook entries follow
// through foreign key cascades.
func (s *Recipes) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&recipe.Recipe{}, id)
	if res.Error != nil {
		return notFound(EntityRecipe, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(EntityRecipe, id)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
