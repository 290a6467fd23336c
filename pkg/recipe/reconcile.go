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

package recipe

// Buckets is the result of reconciling a submitted collection of S against a
// current collection of C.
type Buckets[C, S any] struct {
	ToCreate []S
	ToUpdate []S
	ToDelete []C

	// Unknown holds submitted entries whose identity is not in the current
	// set. They are excluded from every other bucket.
	Unknown []S
}

// Empty reports whether no operation is required and nothing is unknown.
func (b Buckets[C, S]) Empty() bool {
	return len(b.ToCreate) == 0 && len(b.ToUpdate) == 0 && len(b.ToDelete) == 0 && len(b.Unknown) == 0
}

type (
	// StepBuckets is the reconciliation result for a recipe's steps.
	StepBuckets = Buckets[Step, StepInput]

	// IngredientBuckets is the reconciliation result for a step's ingredients.
	IngredientBuckets = Buckets[Ingredient, IngredientInput]
)

// Sort partitions submitted against current by identity. Content is not
// compared: a submitted entry matching a current one is always an update.
// Input order is preserved within each bucket.
func Sort[C, S any](current []C, submitted []S, currentID func(C) int64, submittedRef func(S) Ref) Buckets[C, S] {
	var b Buckets[C, S]

	known := make(map[int64]struct{}, len(current))
	for _, c := range current {
		known[currentID(c)] = struct{}{}
	}

	kept := make(map[int64]struct{}, len(submitted))
	for _, s := range submitted {
		id, ok := submittedRef(s).ID()
		switch {
		case !ok:
			b.ToCreate = append(b.ToCreate, s)
		case contains(known, id):
			kept[id] = struct{}{}
			b.ToUpdate = append(b.ToUpdate, s)
		default:
			b.Unknown = append(b.Unknown, s)
		}
	}

	for _, c := range current {
		if !contains(kept, currentID(c)) {
			b.ToDelete = append(b.ToDelete, c)
		}
	}
	return b
}

// SortSteps reconciles submitted steps against a recipe's current steps.
func SortSteps(current []Step, submitted []StepInput) StepBuckets {
	return Sort(current, submitted,
		func(s Step) int64 { return s.ID },
		func(s StepInput) Ref { return s.ID })
}

// SortIngredients reconciles submitted ingredients against a step's current
// ingredients.
func SortIngredients(current []Ingredient, submitted []IngredientInput) IngredientBuckets {
	return Sort(current, submitted,
		func(i Ingredient) int64 { return i.ID },
		func(i IngredientInput) Ref { return i.ID })
}

func contains(set map[int64]struct{}, id int64) bool {
	_, ok := set[id]
	return ok
}
