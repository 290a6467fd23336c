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

// Ingredients writes single ingredient rows.
type Ingredients struct {
	db   *gorm.DB
	opts options
}

// NewIngredients returns an ingredient adapter bound to db.
func NewIngredients(db *gorm.DB, opts ...Option) *Ingredients {
	return &Ingredients{db: db, opts: newOptions(opts)}
}

// Get returns the ingredient with the given id.
func (s *Ingredients) Get(ctx context.Context, id int64) (*recipe.Ingredient, error) {
	var ing recipe.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, notFound(EntityIngredient, id, err)
	}
	return &ing, nil
}

// Create inserts in as a new ingredient of stepID. Any identity on in is
// ignored.
func (s *Ingredients) Create(ctx context.Context, stepID int64, in recipe.IngredientInput) (*recipe.Ingredient, error) {
	ing := in.Model(stepID)
	ing.ID = 0

	if err := s.db.WithContext(ctx).Create(&ing).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient for step %d: %w", stepID, err)
	}
	s.opts.observe(EntityIngredient, OpCreate)
	return &ing, nil
}

// Update replaces the mutable fields of the ingredient identified by in.
// The owning step is always set to stepID, whatever in.Step says.
func (s *Ingredients) Update(ctx context.Context, in recipe.IngredientInput, stepID int64) (*recipe.Ingredient, error) {
	id, ok := in.ID.ID()
	if !ok {
		return nil, apperrors.BadRequest("ingredient update requires an id")
	}

	res := s.db.WithContext(ctx).
		Model(&recipe.Ingredient{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"step_id":         stepID,
			"amount":          in.Amount,
			"description":     in.Description,
			"instruction_ref": in.InstructionRef,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update ingredient %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound(EntityIngredient, id)
	}
	s.opts.observe(EntityIngredient, OpUpdate)
	return s.Get(ctx, id)
}

// Delete removes the ingredient and returns it as it was.
func (s *Ingredients) Delete(ctx context.Context, id int64) (*recipe.Ingredient, error) {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Delete(&recipe.Ingredient{}, id)
	if res.Error != nil {
		return nil, notFound(EntityIngredient, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound(EntityIngredient, id)
	}
	s.opts.observe(EntityIngredient, OpDelete)
	return prior, nil
}
