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

package manager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/imagestore"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/store"
)

// Manager owns all reads and writes of recipe aggregates.
type Manager struct {
	db      *gorm.DB
	recipes *store.Recipes
	images  ImageStore
	resizer Resizer
	parser  TextParser
	photos  PhotoReader
}

// New returns a Manager using db. Optional collaborators are set with
// options; without them the corresponding operations are unavailable.
func New(db *gorm.DB, opts ...Option) *Manager {
	m := &Manager{
		db:      db,
		recipes: store.NewRecipes(db),
		resizer: imagestore.NewResizer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SaveRecipe creates a new aggregate owned by owner in a single nested
// insert. Identities in the input are ignored.
func (m *Manager) SaveRecipe(ctx context.Context, owner string, in recipe.RecipeInput) (*recipe.Recipe, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, apperrors.BadRequest("recipe owner is required")
	}
	in = in.AsNew()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r := in.Model(owner)
	if err := m.recipes.Create(ctx, r); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to save recipe", err)
	}

	slog.Debug("recipe saved", "recipeId", r.ID, "owner", owner, "steps", len(r.Steps))
	return m.recipes.Get(ctx, r.ID)
}

// GetAllRecipes lists scalar fields of every recipe whose name or
// description contains filter, ignoring case. An empty filter lists all.
func (m *Manager) GetAllRecipes(ctx context.Context, filter string) ([]recipe.SimpleRecipe, error) {
	return m.recipes.List(ctx, store.ListFilter{Text: filter})
}

// GetRecipesByOwner lists scalar fields of the recipes owned by owner.
func (m *Manager) GetRecipesByOwner(ctx context.Context, owner string) ([]recipe.SimpleRecipe, error) {
	return m.recipes.List(ctx, store.ListFilter{Owner: owner})
}

// GetRecipeByID returns the full aggregate.
func (m *Manager) GetRecipeByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	return m.recipes.Get(ctx, id)
}

// DeleteRecipeByID deletes the aggregate and returns it as it was. Stored
// images are removed afterwards on a best-effort basis.
func (m *Manager) DeleteRecipeByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	current, err := m.recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.recipes.Delete(ctx, id); err != nil {
		return nil, err
	}

	m.cleanupImages(ctx, id, current.ImageKey)

	slog.Info("recipe deleted", "recipeId", id, "owner", current.Owner)
	return current, nil
}

// UpdateRecipe reconciles the stored aggregate with in and returns the
// committed result.
func (m *Manager) UpdateRecipe(ctx context.Context, id int64, in recipe.RecipeInput) (*recipe.Recipe, error) {
	start := time.Now()
	defer func() {
		updateDuration.Observe(time.Since(start).Seconds())
	}()

	current, err := m.recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := checkIdentities(current, in); err != nil {
		return nil, err
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := store.NewRecipes(tx).UpdateScalars(ctx, id, in); err != nil {
			return err
		}
		return updateSteps(ctx, tx, id, current.Steps, in.Steps)
	})
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.ErrCodeConflict, apperrors.ErrCodeInvalidRequest:
			return nil, err
		}
		transactionFailures.Inc()
		slog.Error("recipe update rolled back", "recipeId", id, "error", err)
		return nil, apperrors.Transaction(err)
	}

	return m.recipes.Get(ctx, id)
}

// updateSteps applies the step buckets within tx.
func updateSteps(ctx context.Context, tx *gorm.DB, recipeID int64, current []recipe.Step, submitted []recipe.StepInput) error {
	steps := store.NewSteps(tx, store.WithObserver(observeWrite))
	b := steps.Sort(current, submitted)

	for _, s := range b.ToDelete {
		if _, err := steps.Delete(ctx, s.ID); err != nil {
			return fmt.Errorf("failed to delete step %d: %w", s.ID, err)
		}
	}
	for _, s := range b.ToCreate {
		if _, err := steps.Create(ctx, recipeID, s); err != nil {
			return fmt.Errorf("failed to create step %d: %w", s.StepNumber, err)
		}
	}
	for _, s := range b.ToUpdate {
		if _, err := steps.Update(ctx, s); err != nil {
			return fmt.Errorf("failed to update step %s: %w", s.ID, err)
		}
	}
	return nil
}

// checkIdentities rejects step and ingredient ids that are not part of the
// current aggregate, so nothing submitted is silently dropped.
func checkIdentities(current *recipe.Recipe, in recipe.RecipeInput) error {
	b := recipe.SortSteps(current.Steps, in.Steps)
	if len(b.Unknown) > 0 {
		return apperrors.BadRequest("unknown step id %s for recipe %d", b.Unknown[0].ID, current.ID)
	}

	byID := make(map[int64]recipe.Step, len(current.Steps))
	for _, s := range current.Steps {
		byID[s.ID] = s
	}
	for _, s := range b.ToUpdate {
		id, _ := s.ID.ID()
		ings := recipe.SortIngredients(byID[id].Ingredients, s.Ingredients)
		if len(ings.Unknown) > 0 {
			return apperrors.BadRequest("unknown ingredient id %s for step %d", ings.Unknown[0].ID, id)
		}
	}
	return nil
}
