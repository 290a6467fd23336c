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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mchmarny/recipebox/pkg/recipe"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, Config{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))

	t.Cleanup(func() {
		_ = Close(db)
	})
	return db
}

func seedRecipe(t *testing.T, db *gorm.DB) *recipe.Recipe {
	t.Helper()
	in := recipe.RecipeInput{
		Name:        "Pancakes",
		Description: "Fluffy breakfast pancakes",
		Steps: []recipe.StepInput{
			{StepNumber: 1, Instructions: "Mix the dry ingredients", Ingredients: []recipe.IngredientInput{
				{Amount: "2 cups", Description: "flour", InstructionRef: "flour"},
				{Amount: "1 tbsp", Description: "sugar", InstructionRef: "sugar"},
			}},
			{StepNumber: 2, Instructions: "Whisk in the milk", Ingredients: []recipe.IngredientInput{
				{Amount: "1 cup", Description: "milk", InstructionRef: "milk"},
			}},
		},
	}
	r := in.Model("alice")
	require.NoError(t, NewRecipes(db).Create(context.Background(), r))
	return r
}
