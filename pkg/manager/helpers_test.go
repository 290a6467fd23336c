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
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/store"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, store.Config{DSN: filepath.Join(t.TempDir(), "manager.db")})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx, db))
	t.Cleanup(func() {
		_ = store.Close(db)
	})
	return db
}

func pancakes() recipe.RecipeInput {
	return recipe.RecipeInput{
		Name:        "Pancakes",
		Description: "Fluffy",
		SourceName:  "family",
		Steps: []recipe.StepInput{
			{StepNumber: 1, Instructions: "Mix flour and sugar", Ingredients: []recipe.IngredientInput{
				{Amount: "2 cups", Description: "flour", InstructionRef: "flour"},
				{Amount: "1 tbsp", Description: "sugar", InstructionRef: "sugar"},
			}},
			{StepNumber: 2, Instructions: "Add milk", Ingredients: []recipe.IngredientInput{
				{Amount: "1 cup", Description: "milk", InstructionRef: "milk"},
			}},
		},
	}
}

type fakeImages struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	deleteErr error
}

func newFakeImages() *fakeImages {
	return &fakeImages{objects: map[string][]byte{}}
}

func (f *fakeImages) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return "https://img.test/" + path, nil
}

func (f *fakeImages) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, path)
	return nil
}

type fakeParser struct {
	in  *recipe.RecipeInput
	err error
}

func (f *fakeParser) TextToRecipe(_ context.Context, _, _ string) (*recipe.RecipeInput, error) {
	return f.in, f.err
}

type fakePhotos struct {
	text string
}

func (f *fakePhotos) TextFromPhoto(_ context.Context, photo []byte) (string, error) {
	if len(photo) == 0 {
		return "", errors.New("empty photo")
	}
	return f.text, nil
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}
