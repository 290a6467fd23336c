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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

func TestStepsCreate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)

	step, err := NewSteps(db).Create(ctx, r.ID, recipe.StepInput{
		StepNumber:   3,
		Instructions: "Fry on a hot griddle",
		Ingredients: []recipe.IngredientInput{
			{Amount: "1 tbsp", Description: "butter"},
			{Amount: "", Description: "maple syrup"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, step.ID)
	assert.Equal(t, r.ID, step.RecipeID)
	require.Len(t, step.Ingredients, 2)
	assert.Less(t, step.Ingredients[0].ID, step.Ingredients[1].ID)
	assert.Equal(t, "butter", step.Ingredients[0].Description)
	for _, ing := range step.Ingredients {
		assert.Equal(t, step.ID, ing.StepID)
	}
}

func TestStepsUpdate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)
	steps := NewSteps(db)
	current := r.Steps[0]

	t.Run("reconciles ingredients", func(t *testing.T) {
		updated, err := steps.Update(ctx, recipe.StepInput{
			ID:           recipe.ExistingRef(current.ID),
			StepNumber:   1,
			Instructions: "Sift the dry ingredients",
			Ingredients: []recipe.IngredientInput{
				{ID: recipe.ExistingRef(current.Ingredients[1].ID), Amount: "2 tbsp", Description: "sugar"},
				{Amount: "1 tsp", Description: "baking powder"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Sift the dry ingredients", updated.Instructions)
		require.Len(t, updated.Ingredients, 2)
		assert.Equal(t, current.Ingredients[1].ID, updated.Ingredients[0].ID)
		assert.Equal(t, "2 tbsp", updated.Ingredients[0].Amount)
		assert.Equal(t, "baking powder", updated.Ingredients[1].Description)

		_, err = NewIngredients(db).Get(ctx, current.Ingredients[0].ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	})

	t.Run("unknown ingredient is rejected", func(t *testing.T) {
		sibling := r.Steps[1].Ingredients[0].ID
		_, err := steps.Update(ctx, recipe.StepInput{
			ID:          recipe.ExistingRef(current.ID),
			Ingredients: []recipe.IngredientInput{{ID: recipe.ExistingRef(sibling)}},
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))

		// The sibling's ingredient stays on its own step.
		ing, err := NewIngredients(db).Get(ctx, sibling)
		require.NoError(t, err)
		assert.Equal(t, r.Steps[1].ID, ing.StepID)
	})

	t.Run("missing step", func(t *testing.T) {
		_, err := steps.Update(ctx, recipe.StepInput{ID: recipe.ExistingRef(987654)})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	})

	t.Run("new ref", func(t *testing.T) {
		_, err := steps.Update(ctx, recipe.StepInput{Instructions: "x"})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))
	})
}

func TestStepsDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)
	steps := NewSteps(db)
	target := r.Steps[0]

	deleted, err := steps.Delete(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, deleted.ID)
	assert.Len(t, deleted.Ingredients, len(target.Ingredients))

	_, err = steps.Get(ctx, target.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	for _, ing := range target.Ingredients {
		_, err := NewIngredients(db).Get(ctx, ing.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	}

	_, err = steps.Delete(ctx, target.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestStepsSort(t *testing.T) {
	b := NewSteps(nil).Sort([]recipe.Step{{ID: 1}}, []recipe.StepInput{{ID: recipe.ExistingRef(1)}, {}})
	assert.Len(t, b.ToUpdate, 1)
	assert.Len(t, b.ToCreate, 1)
	assert.Empty(t, b.ToDelete)
}
