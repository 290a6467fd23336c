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

import "time"

// Recipe is the aggregate root. It exclusively owns its Steps, which
// exclusively own their Ingredients.
type Recipe struct {
	ID          int64     `json:"recipeId" yaml:"recipeId" gorm:"primaryKey"`
	Name        string    `json:"name" yaml:"name" gorm:"not null"`
	Description string    `json:"description" yaml:"description"`
	SourceURL   string    `json:"sourceUrl" yaml:"sourceUrl"`
	SourceName  string    `json:"sourceName" yaml:"sourceName"`
	ImageURL    string    `json:"imageUrl" yaml:"imageUrl"`
	ImageSm     string    `json:"imageSm" yaml:"imageSm"`
	ImageMd     string    `json:"imageMd" yaml:"imageMd"`
	ImageLg     string    `json:"imageLg" yaml:"imageLg"`
	ImageKey    string    `json:"-" yaml:"-"`
	Owner       string    `json:"owner" yaml:"owner" gorm:"not null;index"`
	Version     int64     `json:"version" yaml:"version" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	Steps       []Step    `json:"steps" yaml:"steps" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	// Cookbook is only declared so the join table gets its cascading foreign key.
	Cookbook []CookbookEntry `json:"-" yaml:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName implements gorm's schema.Tabler.
func (Recipe) TableName() string { return "recipes" }

// HasImages reports whether resized renditions are attached.
func (r *Recipe) HasImages() bool {
	return r.ImageSm != "" || r.ImageMd != "" || r.ImageLg != ""
}

// Simple returns the scalar projection of r.
func (r *Recipe) Simple() SimpleRecipe {
	return SimpleRecipe{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		SourceURL:   r.SourceURL,
		SourceName:  r.SourceName,
		ImageURL:    r.ImageURL,
		ImageSm:     r.ImageSm,
		ImageMd:     r.ImageMd,
		ImageLg:     r.ImageLg,
		Owner:       r.Owner,
	}
}

// Step is one ordered instruction of a recipe.
type Step struct {
	ID           int64        `json:"stepId" yaml:"stepId" gorm:"primaryKey"`
	RecipeID     int64        `json:"recipeId" yaml:"recipeId" gorm:"not null;index"`
	StepNumber   int          `json:"stepNumber" yaml:"stepNumber"`
	Instructions string       `json:"instructions" yaml:"instructions"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients" gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE"`
}

// TableName implements gorm's schema.Tabler.
func (Step) TableName() string { return "steps" }

// Ingredient is a quantity of something used by a single step.
type Ingredient struct {
	ID     int64 `json:"ingredientId" yaml:"ingredientId" gorm:"primaryKey"`
	StepID int64 `json:"step" yaml:"step" gorm:"not null;index"`

	// Amount is free text ("1 cup", "a pinch") and may be empty.
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`

	// InstructionRef is the token used to mention this ingredient inside the
	// step's instructions. Descriptive only.
	InstructionRef string `json:"instructionRef" yaml:"instructionRef"`
}

// TableName implements gorm's schema.Tabler.
func (Ingredient) TableName() string { return "ingredients" }

// SimpleRecipe is the scalar projection of a Recipe used by list endpoints.
type SimpleRecipe struct {
	ID          int64  `json:"recipeId" yaml:"recipeId"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	SourceURL   string `json:"sourceUrl" yaml:"sourceUrl"`
	SourceName  string `json:"sourceName" yaml:"sourceName"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	ImageSm     string `json:"imageSm" yaml:"imageSm"`
	ImageMd     string `json:"imageMd" yaml:"imageMd"`
	ImageLg     string `json:"imageLg" yaml:"imageLg"`
	Owner       string `json:"owner" yaml:"owner"`
}

// CookbookEntry records that a user saved a recipe to their cookbook.
type CookbookEntry struct {
	RecipeID  int64     `json:"recipeId" yaml:"recipeId" gorm:"primaryKey;autoIncrement:false"`
	Username  string    `json:"username" yaml:"username" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// TableName implements gorm's schema.Tabler.
func (CookbookEntry) TableName() string { return "cookbook_entries" }

// CookbookKey identifies a cookbook entry.
type CookbookKey struct {
	RecipeID int64  `json:"recipeId" yaml:"recipeId"`
	Username string `json:"username" yaml:"username"`
}

// CookbookRemoval is returned when an entry is removed from a cookbook.
type CookbookRemoval struct {
	Removed CookbookKey `json:"removed" yaml:"removed"`
}

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{&Recipe{}, &Step{}, &Ingredient{}, &CookbookEntry{}}
}
