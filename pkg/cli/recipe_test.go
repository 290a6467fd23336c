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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/recipebox/pkg/auth"
	"github.com/mchmarny/recipebox/pkg/config"
	"github.com/mchmarny/recipebox/pkg/manager"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/serializer"
	"github.com/mchmarny/recipebox/pkg/store"
)

const recipeYAML = `name: Tea
description: Hot drink
steps:
  - stepNumber: 1
    instructions: Boil water
    ingredients:
      - amount: 1 cup
        description: water
        instructionRef: water
  - stepNumber: 2
    instructions: Steep the tea
    ingredients: []
`

type stubParser struct {
	got string
}

func (p *stubParser) TextToRecipe(_ context.Context, raw, _ string) (*recipe.RecipeInput, error) {
	p.got = raw
	return &recipe.RecipeInput{
		Name:  "Parsed",
		Steps: []recipe.StepInput{{StepNumber: 1, Instructions: raw}},
	}, nil
}

type stubPhotos struct{}

func (stubPhotos) TextFromPhoto(_ context.Context, _ []byte) (string, error) {
	return "Text read from a photo", nil
}

// setupCLI points the CLI at a fresh database with one registered user.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dsn := filepath.Join(dir, "cli.db")
	t.Setenv("DATABASE_DRIVER", store.DriverSQLite)
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("IMAGE_DIR", "")
	t.Setenv("IMAGE_BUCKET", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	run(t, "migrate")

	ctx := context.Background()
	db, err := store.Open(ctx, store.Config{DSN: dsn})
	require.NoError(t, err)
	defer func() {
		_ = store.Close(db)
	}()
	_, err = auth.NewUsers(db).Register(ctx, auth.Registration{Username: "alice", Password: "password-alice"})
	require.NoError(t, err)
	return dir
}

func run(t *testing.T, args ...string) {
	t.Helper()
	require.NoError(t, runErr(args...))
}

func runErr(args ...string) error {
	return newRootCmd().Run(context.Background(), append([]string{name}, args...))
}

func writeFile(t *testing.T, dir, fileName, content string) string {
	t.Helper()
	p := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestImportExport(t *testing.T) {
	dir := setupCLI(t)
	in := writeFile(t, dir, "tea.yaml", recipeYAML)
	saved := filepath.Join(dir, "saved.json")

	run(t, "import", "--file", in, "--owner", "alice", "--format", "json", "--output", saved)

	rec, err := serializer.FromFile[recipe.Recipe](context.Background(), saved)
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "alice", rec.Owner)
	require.Len(t, rec.Steps, 2)
	require.Len(t, rec.Steps[0].Ingredients, 1)

	exported := filepath.Join(dir, "export.yaml")
	run(t, "export", "--id", strconv.FormatInt(rec.ID, 10), "--output", exported)

	again := filepath.Join(dir, "again.json")
	run(t, "import", "--file", exported, "--owner", "alice", "--format", "json", "--output", again)

	copied, err := serializer.FromFile[recipe.Recipe](context.Background(), again)
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, copied.ID)
	assert.Equal(t, rec.Name, copied.Name)
	require.Len(t, copied.Steps, 2)
	assert.NotEqual(t, rec.Steps[0].ID, copied.Steps[0].ID)
	assert.Equal(t, rec.Steps[0].Ingredients[0].Description, copied.Steps[0].Ingredients[0].Description)

	all := filepath.Join(dir, "all.json")
	run(t, "export", "--owner", "alice", "--format", "json", "--output", all)
	list, err := serializer.FromFile[[]recipe.Recipe](context.Background(), all)
	require.NoError(t, err)
	assert.Len(t, *list, 2)
}

func TestImportErrors(t *testing.T) {
	dir := setupCLI(t)
	valid := writeFile(t, dir, "tea.yaml", recipeYAML)
	invalid := writeFile(t, dir, "bad.yaml", "name: ''\nsteps: []\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown owner", args: []string{"import", "--file", valid, "--owner", "nobody"}},
		{name: "invalid recipe", args: []string{"import", "--file", invalid, "--owner", "alice"}},
		{name: "missing file", args: []string{"import", "--file", filepath.Join(dir, "none.yaml"), "--owner", "alice"}},
		{name: "missing owner flag", args: []string{"import", "--file", valid}},
		{name: "bad format", args: []string{"import", "--file", valid, "--owner", "alice", "--format", "xml"}},
		{name: "export without selector", args: []string{"export"}},
		{name: "export unknown id", args: []string{"export", "--id", "9999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, runErr(tt.args...))
		})
	}
}

func TestMigrateAdmin(t *testing.T) {
	dir := setupCLI(t)

	run(t, "migrate", "--admin", "alice")

	ctx := context.Background()
	db, err := store.Open(ctx, store.Config{DSN: filepath.Join(dir, "cli.db")})
	require.NoError(t, err)
	u, err := auth.NewUsers(db).Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	require.NoError(t, store.Close(db))

	assert.Error(t, runErr("migrate", "--admin", "nobody"))
}

func TestParse(t *testing.T) {
	dir := setupCLI(t)
	parser := &stubParser{}

	origText, origPhoto := newTextParser, newPhotoReader
	t.Cleanup(func() {
		newTextParser, newPhotoReader = origText, origPhoto
	})
	newTextParser = func(context.Context, *config.Config) (manager.TextParser, error) {
		return parser, nil
	}
	newPhotoReader = func(context.Context, *config.Config) (manager.PhotoReader, error) {
		return stubPhotos{}, nil
	}

	t.Run("text", func(t *testing.T) {
		text := writeFile(t, dir, "tea.txt", "Boil water then steep the tea")
		out := filepath.Join(dir, "parsed.yaml")
		run(t, "parse", "--file", text, "--output", out)

		in, err := serializer.FromFile[recipe.RecipeInput](context.Background(), out)
		require.NoError(t, err)
		assert.Equal(t, "Parsed", in.Name)
		assert.Equal(t, "Boil water then steep the tea", parser.got)
	})

	t.Run("photo", func(t *testing.T) {
		photo := writeFile(t, dir, "card.png", "png bytes")
		run(t, "parse", "--photo", photo, "--output", filepath.Join(dir, "photo.yaml"))
		assert.Equal(t, "Text read from a photo", parser.got)
	})

	t.Run("requires one source", func(t *testing.T) {
		assert.Error(t, runErr("parse"))
		assert.Error(t, runErr("parse", "--file", "a.txt", "--photo", "b.png"))
	})
}

func TestParseRequiresAPIKey(t *testing.T) {
	dir := setupCLI(t)
	text := writeFile(t, dir, "tea.txt", "Boil water then steep the tea")
	assert.Error(t, runErr("parse", "--file", text))
}
