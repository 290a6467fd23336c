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

// Steps writes single steps together with their ingredients.
type Steps struct {
	db          *gorm.DB
	opts        options
	ingredients *Ingredients
}

// NewSteps returns a step adapter bound to db. Ingredient writes go through
// an Ingredients adapter bound to the same handle.
func NewSteps(db *gorm.DB, opts ...Option) *Steps {
	return &Steps{
		db:          db,
		opts:        newOptions(opts),
		ingredients: NewIngredients(db, opts...),
	}
}

// Sort reconciles submitted steps against current ones.
func (s *Steps) Sort(current []recipe.Step, submitted []recipe.StepInput) recipe.StepBuckets {
	return recipe.SortSteps(current, submitted)
}

// Get returns the step with its ingredients ordered by id.
func (s *Steps) Get(ctx context.Context, id int64) (*recipe.Step, error) {
	var step recipe.Step
	err := s.db.WithContext(ctx).
		Preload("Ingredients", orderByID).
		First(&step, id).Error
	if err != nil {
		return nil, notFound(EntityStep, id, err)
	}
	return &step, nil
}

// Create inserts a step under recipeID, then each of its ingredients one at
// a time, and returns the stored step.
func (s *Steps) Create(ctx context.Context, recipeID int64, in recipe.StepInput) (*recipe.Step, error) {
	step := recipe.Step{
		RecipeID:     recipeID,
		StepNumber:   in.StepNumber,
		Instructions: in.Instructions,
	}
	if err := s.db.WithContext(ctx).Create(&step).Error; err != nil {
		return nil, fmt.Errorf("failed to create step for recipe %d: %w", recipeID, err)
	}
	s.opts.observe(EntityStep, OpCreate)

	for _, ing := range in.Ingredients {
		if _, err := s.ingredients.Create(ctx, step.ID, ing); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, step.ID)
}

// Update replaces the step's number and instructions, then reconciles its
// ingredients: deletes first, then creates, then updates. Ingredient ids
// that do not belong to the step are rejected.
func (s *Steps) Update(ctx context.Context, in recipe.StepInput) (*recipe.Step, error) {
	id, ok := in.ID.ID()
	if !ok {
		return nil, apperrors.BadRequest("step update requires an id")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).
		Model(&recipe.Step{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"step_number":  in.StepNumber,
			"instructions": in.Instructions,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update step %d: %w", id, res.Error)
	}
	s.opts.observe(EntityStep, OpUpdate)

	b := recipe.SortIngredients(current.Ingredients, in.Ingredients)
	if len(b.Unknown) > 0 {
		return nil, apperrors.BadRequest("unknown ingredient id %s for step %d", b.Unknown[0].ID, id)
	}

	for _, ing := range b.ToDelete {
		if _, err := s.ingredients.Delete(ctx, ing.ID); err != nil {
			return nil, err
		}
	}
	for _, ing := range b.ToCreate {
		if _, err := s.ingredients.Create(ctx, id, ing); err != nil {
			return nil, err
		}
	}
	for _, ing := range b.ToUpdate {
		if _, err := s.ingredients.Update(ctx, ing, id); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes the step. Its ingredients go with it through the foreign
// key cascade. The step is returned as it was, ingredients included.
func (s *Steps) Delete(ctx context.Context, id int64) (*recipe.Step, error) {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Delete(&recipe.Step{}, id)
	if res.Error != nil {
		return nil, notFound(EntityStep, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound(EntityStep, id)
	}
	s.opts.observe(EntityStep, OpDelete)
	return prior, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func orderSteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_number ASC, id ASC")
}
