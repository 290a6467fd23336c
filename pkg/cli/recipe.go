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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/recipebox/pkg/api"
	"github.com/mchmarny/recipebox/pkg/config"
	"github.com/mchmarny/recipebox/pkg/manager"
	"github.com/mchmarny/recipebox/pkg/ocr"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/serializer"
	"github.com/mchmarny/recipebox/pkg/textparse"
)

const cliUser = "recipebox-cli"

// Model client constructors. Replaced in tests.
var (
	newTextParser = func(_ context.Context, cfg *config.Config) (manager.TextParser, error) {
		if !cfg.OpenAI.Enabled() {
			return nil, fmt.Errorf("OPENAI_API_KEY is required to parse recipe text")
		}
		return textparse.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	newPhotoReader = func(ctx context.Context, cfg *config.Config) (manager.PhotoReader, error) {
		if !cfg.Gemini.Enabled() {
			return nil, fmt.Errorf("GEMINI_API_KEY is required to read recipe photos")
		}
		return ocr.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	}
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Convert recipe text or a recipe photo into a structured recipe",
		Description: `Send free-form recipe text to the language model and print the
structured recipe. With --photo the text is first read from the image.

The result can be edited and saved with the import command.

# Examples

Parse a text file to YAML:
  recipebox parse --file pancakes.txt

Parse text from stdin to a JSON file:
  cat pancakes.txt | recipebox parse --file - --format json -o pancakes.json

Read a photographed recipe card:
  recipebox parse --photo card.jpg`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path or http(s) URL of the recipe text, - for stdin",
			},
			&cli.StringFlag{
				Name:  "photo",
				Usage: "Path to a JPEG, PNG or WebP photo of the recipe",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			file, photo := cmd.String("file"), cmd.String("photo")
			if (file == "") == (photo == "") {
				return fmt.Errorf("exactly one of --file or --photo is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var text string
			if photo != "" {
				text, err = readPhoto(ctx, cfg, photo)
			} else {
				text, err = readText(ctx, file)
			}
			if err != nil {
				return err
			}

			parser, err := newTextParser(ctx, cfg)
			if err != nil {
				return err
			}
			in, err := parser.TextToRecipe(ctx, text, cliUser)
			if err != nil {
				return fmt.Errorf("failed to parse recipe: %w", err)
			}
			slog.Debug("recipe parsed", "name", in.Name, "steps", len(in.Steps))

			return write(ctx, cmd, in)
		},
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Save a JSON or YAML recipe file as a new recipe",
		Description: `Read a recipe from a file or URL and save it for an existing user.

Ids present in the file are ignored so exported recipes can be imported
as copies. The format is taken from the file extension.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path or http(s) URL of the recipe file (.json, .yaml)",
			},
			&cli.StringFlag{
				Name:     "owner",
				Required: true,
				Usage:    "Username of the recipe owner",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			path := cmd.String("file")
			in, err := serializer.FromFile[recipe.RecipeInput](ctx, path)
			if err != nil {
				return fmt.Errorf("failed to load recipe from %q: %w", path, err)
			}

			app, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			owner := cmd.String("owner")
			if _, err := app.Users.Get(ctx, owner); err != nil {
				return fmt.Errorf("invalid owner %q: %w", owner, err)
			}

			rec, err := app.Manager.SaveRecipe(ctx, owner, *in)
			if err != nil {
				return fmt.Errorf("failed to save recipe: %w", err)
			}
			slog.Info("recipe imported", "id", rec.ID, "owner", owner, "steps", len(rec.Steps))

			return write(ctx, cmd, rec)
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write stored recipes as JSON or YAML",
		Description: `Export one recipe with all steps and ingredients by --id, or
every recipe of a user by --owner.`,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "id",
				Usage: "Recipe id to export",
			},
			&cli.StringFlag{
				Name:  "owner",
				Usage: "Export every recipe owned by this user",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			id, owner := cmd.Int64("id"), cmd.String("owner")
			if (id == 0) == (owner == "") {
				return fmt.Errorf("exactly one of --id or --owner is required")
			}

			app, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			if id != 0 {
				rec, err := app.Manager.GetRecipeByID(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to export recipe %d: %w", id, err)
				}
				return write(ctx, cmd, rec)
			}

			list, err := app.Manager.GetRecipesByOwner(ctx, owner)
			if err != nil {
				return fmt.Errorf("failed to list recipes of %q: %w", owner, err)
			}
			recipes := make([]*recipe.Recipe, 0, len(list))
			for _, s := range list {
				rec, err := app.Manager.GetRecipeByID(ctx, s.ID)
				if err != nil {
					return fmt.Errorf("failed to export recipe %d: %w", s.ID, err)
				}
				recipes = append(recipes, rec)
			}
			return write(ctx, cmd, recipes)
		},
	}
}

func openApp(ctx context.Context, cmd *cli.Command) (*api.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewApp(ctx, cfg)
}

func closeApp(app *api.App) {
	if err := app.Close(); err != nil {
		slog.Warn("failed to close application", "error", err)
	}
}

func readText(ctx context.Context, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case path == "-":
		data, err = io.ReadAll(os.Stdin)
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		data, err = serializer.Fetch(ctx, path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read recipe text from %q: %w", path, err)
	}
	return string(data), nil
}

func readPhoto(ctx context.Context, cfg *config.Config, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo %q: %w", path, err)
	}
	reader, err := newPhotoReader(ctx, cfg)
	if err != nil {
		return "", err
	}
	text, err := reader.TextFromPhoto(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to read text from photo: %w", err)
	}
	return text, nil
}
