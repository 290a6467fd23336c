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

import (
	"strings"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

// RecipeInput is a client-submitted recipe, used both to create and to update.
type RecipeInput struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	SourceURL   string `json:"sourceUrl" yaml:"sourceUrl"`
	SourceName  string `json:"sourceName" yaml:"sourceName"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`

	// Version, when positive, makes an update conditional on the stored
	// version matching it.
	Version int64 `json:"version,omitempty" yaml:"version,omitempty"`

	Steps []StepInput `json:"steps" yaml:"steps"`
}

// StepInput is a submitted step. ID is New for steps to be created.
type StepInput struct {
	ID           Ref               `json:"stepId,omitzero" yaml:"stepId,omitempty"`
	StepNumber   int               `json:"stepNumber" yaml:"stepNumber"`
	Instructions string            `json:"instructions" yaml:"instructions"`
	Ingredients  []IngredientInput `json:"ingredients" yaml:"ingredients"`
}

// IngredientInput is a submitted ingredient. Step is accepted for wire
// compatibility but never trusted: the owning step always comes from the
// enclosing StepInput.
type IngredientInput struct {
	ID             Ref    `json:"ingredientId,omitzero" yaml:"ingredientId,omitempty"`
	Amount         string `json:"amount" yaml:"amount"`
	Description    string `json:"description" yaml:"description"`
	InstructionRef string `json:"instructionRef" yaml:"instructionRef"`
	Step           int64  `json:"step,omitempty" yaml:"step,omitempty"`
}

// Validate checks structural constraints that do not need stored state:
// a non-blank name, no duplicate step or ingredient identities, and no
// existing ingredients nested under a new step.
func (in *RecipeInput) Validate() error {
	if in == nil {
		return apperrors.BadRequest("recipe is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.BadRequest("recipe name is required")
	}
	if in.Version < 0 {
		return apperrors.BadRequest("version must not be negative")
	}

	steps := make(map[int64]struct{}, len(in.Steps))
	ingredients := make(map[int64]struct{})
	for i, s := range in.Steps {
		if id, ok := s.ID.ID(); ok {
			if _, dup := steps[id]; dup {
				return apperrors.BadRequest("duplicate step id %d", id)
			}
			steps[id] = struct{}{}
		}
		for _, ing := range s.Ingredients {
			id, ok := ing.ID.ID()
			if !ok {
				continue
			}
			if s.ID.IsNew() {
				return apperrors.BadRequest("step %d is new but references existing ingredient %d", i+1, id)
			}
			if _, dup := ingredients[id]; dup {
				return apperrors.BadRequest("duplicate ingredient id %d", id)
			}
			ingredients[id] = struct{}{}
		}
	}
	return nil
}

// AsNew returns a copy of in with every identity cleared, so the whole
// aggregate is treated as new.
func (in RecipeInput) AsNew() RecipeInput {
	out := in
	out.Version = 0
	out.Steps = make([]StepInput, len(in.Steps))
	for i, s := range in.Steps {
		s.ID = NewRef()
		ings := make([]IngredientInput, len(s.Ingredients))
		for j, ing := range s.Ingredients {
			ing.ID = NewRef()
			ing.Step = 0
			ings[j] = ing
		}
		s.Ingredients = ings
		out.Steps[i] = s
	}
	return out
}

// InputFrom converts a stored recipe into the input that would leave it
// unchanged when submitted as an update.
func InputFrom(r *Recipe) RecipeInput {
	in := RecipeInput{
		Name:        r.Name,
		Description: r.Description,
		SourceURL:   r.SourceURL,
		SourceName:  r.SourceName,
		ImageURL:    r.ImageURL,
		Steps:       make([]StepInput, 0, len(r.Steps)),
	}
	for _, s := range r.Steps {
		si := StepInput{
			ID:           ExistingRef(s.ID),
			StepNumber:   s.StepNumber,
			Instructions: s.Instructions,
			Ingredients:  make([]IngredientInput, 0, len(s.Ingredients)),
		}
		for _, ing := range s.Ingredients {
			si.Ingredients = append(si.Ingredients, IngredientInput{
				ID:             ExistingRef(ing.ID),
				Amount:         ing.Amount,
				Description:    ing.Description,
				InstructionRef: ing.InstructionRef,
				Step:           ing.StepID,
			})
		}
		in.Steps = append(in.Steps, si)
	}
	return in
}

// Model builds the nested persistence model for a new recipe owned by owner.
// Identities in the input are ignored.
func (in RecipeInput) Model(owner string) *Recipe {
	r := &Recipe{
		Name:        in.Name,
		Description: in.Description,
		SourceURL:   in.SourceURL,
		SourceName:  in.SourceName,
		ImageURL:    in.ImageURL,
		Owner:       owner,
		Version:     1,
		Steps:       make([]Step, 0, len(in.Steps)),
	}
	for _, s := range in.Steps {
		step := Step{
			StepNumber:   s.StepNumber,
			Instructions: s.Instructions,
			Ingredients:  make([]Ingredient, 0, len(s.Ingredients)),
		}
		for _, ing := range s.Ingredients {
			step.Ingredients = append(step.Ingredients, ing.Model(0))
		}
		r.Steps = append(r.Steps, step)
	}
	return r
}

// Model returns the ingredient row for in attached to stepID.
func (in IngredientInput) Model(stepID int64) Ingredient {
	ing := Ingredient{
		StepID:         stepID,
		Amount:         in.Amount,
		Description:    in.Description,
		InstructionRef: in.InstructionRef,
	}
	if id, ok := in.ID.ID(); ok {
		ing.ID = id
	}
	return ing
}
