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

func TestRecipesCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)

	got, err := NewRecipes(db).Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, int64(1), got.Version)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, 1, got.Steps[0].StepNumber)
	assert.Equal(t, 2, got.Steps[1].StepNumber)
	require.Len(t, got.Steps[0].Ingredients, 2)
	assert.Equal(t, "flour", got.Steps[0].Ingredients[0].Description)
	assert.Equal(t, got.Steps[0].ID, got.Steps[0].Ingredients[0].StepID)

	_, err = NewRecipes(db).Get(ctx, 31337)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestRecipesList(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	recipes := NewRecipes(db)

	for _, in := range []struct{ name, desc, owner string }{
		{"Pancakes", "Fluffy breakfast", "alice"},
		{"Tomato Soup", "Warm and rich", "bob"},
		{"Waffles", "Crisp 100% butter breakfast", "alice"},
	} {
		r := recipe.RecipeInput{Name: in.name, Description: in.desc}.Model(in.owner)
		require.NoError(t, recipes.Create(ctx, r))
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"all", ListFilter{}, []string{"Pancakes", "Tomato Soup", "Waffles"}},
		{"by name ignoring case", ListFilter{Text: "SOUP"}, []string{"Tomato Soup"}},
		{"by description", ListFilter{Text: "breakfast"}, []string{"Pancakes", "Waffles"}},
		{"wildcards are literal", ListFilter{Text: "100%"}, []string{"Waffles"}},
		{"by owner", ListFilter{Owner: "bob"}, []string{"Tomato Soup"}},
		{"owner and text", ListFilter{Owner: "alice", Text: "waf"}, []string{"Waffles"}},
		{"no match", ListFilter{Text: "sushi"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := recipes.List(ctx, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(list))
			for _, r := range list {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestRecipesUpdateScalars(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)
	recipes := NewRecipes(db)

	require.NoError(t, recipes.UpdateScalars(ctx, r.ID, recipe.RecipeInput{Name: "Crepes", SourceName: "grandma"}))
	got, err := recipes.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crepes", got.Name)
	assert.Empty(t, got.Description)
	assert.Equal(t, "grandma", got.SourceName)
	assert.Equal(t, int64(2), got.Version)

	err = recipes.UpdateScalars(ctx, r.ID, recipe.RecipeInput{Name: "Stale", Version: 1})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))

	require.NoError(t, recipes.UpdateScalars(ctx, r.ID, recipe.RecipeInput{Name: "Fresh", Version: 2}))

	err = recipes.UpdateScalars(ctx, 5555, recipe.RecipeInput{Name: "x"})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestRecipesSetImages(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)
	recipes := NewRecipes(db)

	require.NoError(t, recipes.SetImages(ctx, r.ID, Images{Key: "k1", URL: "lg", Sm: "sm", Md: "md", Lg: "lg"}))
	got, err := recipes.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.HasImages())
	assert.Equal(t, "lg", got.ImageURL)
	assert.Equal(t, "k1", got.ImageKey)

	require.NoError(t, recipes.SetImages(ctx, r.ID, Images{}))
	got, err = recipes.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, got.HasImages())
	assert.Empty(t, got.ImageURL)
	assert.Empty(t, got.ImageKey)
}

func TestRecipesDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := seedRecipe(t, db)
	recipes := NewRecipes(db)

	_, err := NewCookbook(db).Add(ctx, r.ID, "bob")
	require.NoError(t, err)

	require.NoError(t, recipes.Delete(ctx, r.ID))

	_, err = recipes.Get(ctx, r.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	for _, s := range r.Steps {
		_, err := NewSteps(db).Get(ctx, s.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
		for _, ing := range s.Ingredients {
			_, err := NewIngredients(db).Get(ctx, ing.ID)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
		}
	}

	var entries int64
	require.NoError(t, db.Model(&recipe.CookbookEntry{}).Count(&entries).Error)
	assert.Zero(t, entries)

	err = recipes.Delete(ctx, r.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestIdentitiesAreNotReused(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	first := seedRecipe(t, db)
	require.NoError(t, NewRecipes(db).Delete(ctx, first.ID))

	second := seedRecipe(t, db)
	assert.Greater(t, second.ID, first.ID)
	assert.Greater(t, second.Steps[0].ID, first.Steps[1].ID)
	assert.Greater(t, second.Steps[0].Ingredients[0].ID, first.Steps[1].Ingredients[0].ID)
}
