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

func TestIngredients(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)
	step := r.Steps[0]

	ings := NewIngredients(db)

	t.Run("create ignores submitted identity", func(t *testing.T) {
		created, err := ings.Create(ctx, step.ID, recipe.IngredientInput{
			ID:          recipe.ExistingRef(step.Ingredients[0].ID),
			Amount:      "",
			Description: "a pinch of salt",
			Step:        9999,
		})
		require.NoError(t, err)
		assert.NotEqual(t, step.Ingredients[0].ID, created.ID)
		assert.Equal(t, step.ID, created.StepID)
		assert.Empty(t, created.Amount)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		id := step.Ingredients[0].ID
		updated, err := ings.Update(ctx, recipe.IngredientInput{
			ID:             recipe.ExistingRef(id),
			Amount:         "3 cups",
			Description:    "whole wheat flour",
			InstructionRef: "wheat",
		}, step.ID)
		require.NoError(t, err)
		assert.Equal(t, "3 cups", updated.Amount)
		assert.Equal(t, "whole wheat flour", updated.Description)
		assert.Equal(t, "wheat", updated.InstructionRef)
	})

	t.Run("update ignores supplied step", func(t *testing.T) {
		id := step.Ingredients[1].ID
		other := r.Steps[1].ID

		updated, err := ings.Update(ctx, recipe.IngredientInput{
			ID:          recipe.ExistingRef(id),
			Description: "brown sugar",
			Step:        other,
		}, step.ID)
		require.NoError(t, err)
		assert.Equal(t, step.ID, updated.StepID)

		stored, err := ings.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, step.ID, stored.StepID)
	})

	t.Run("update requires identity", func(t *testing.T) {
		_, err := ings.Update(ctx, recipe.IngredientInput{Description: "x"}, step.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := ings.Update(ctx, recipe.IngredientInput{ID: recipe.ExistingRef(424242)}, step.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	})

	t.Run("delete returns prior content", func(t *testing.T) {
		want, err := ings.Get(ctx, step.Ingredients[0].ID)
		require.NoError(t, err)

		deleted, err := ings.Delete(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, deleted)

		_, err = ings.Get(ctx, want.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

		_, err = ings.Delete(ctx, want.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	})
}

func TestIngredientsObserver(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)

	seen := map[string]int{}
	ings := NewIngredients(db, WithObserver(func(entity, op string) {
		seen[entity+"/"+op]++
	}))

	created, err := ings.Create(ctx, r.Steps[0].ID, recipe.IngredientInput{Description: "eggs"})
	require.NoError(t, err)
	_, err = ings.Delete(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"ingredient/create": 1, "ingredient/delete": 1}, seen)
}
