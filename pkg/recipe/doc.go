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

// Package recipe defines the recipe aggregate and the reconciliation logic
// used to bring a stored aggregate in line with a submitted one.
//
// # Aggregate
//
// A Recipe exclusively owns its Steps, and each Step exclusively owns its
// Ingredients. All three carry server-assigned identities. Cookbook entries
// link recipes to users and cascade when the recipe is removed.
//
// # Inputs
//
// Clients submit RecipeInput values. Each nested StepInput and
// IngredientInput carries a Ref, which is either New (no identity, to be
// created) or Existing (identity of a stored child, to be updated):
//
//	in := recipe.RecipeInput{
//	    Name: "Pancakes",
//	    Steps: []recipe.StepInput{
//	        {ID: recipe.ExistingRef(7), StepNumber: 1, Instructions: "Mix"},
//	        {ID: recipe.NewRef(), StepNumber: 2, Instructions: "Fry"},
//	    },
//	}
//
// On the wire a Ref is the stepId or ingredientId field; null or absent
// means New.
//
// # Reconciliation
//
// SortSteps and SortIngredients partition a submitted collection against
// the current one by identity only:
//
//   - ToCreate: submitted entries with a New ref
//   - ToUpdate: submitted entries whose ref matches a current entry
//   - ToDelete: current entries not referenced by any submitted entry
//   - Unknown: submitted entries whose ref matches no current entry
//
// Unknown entries never land in the other buckets. Callers decide how to
// treat them; the manager rejects them before writing anything.
package recipe
