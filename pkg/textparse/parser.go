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

package textparse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(openai.ChatModelGPT4oMini)

// ChatCompleter is the subset of the OpenAI chat completion service used here.
type ChatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Parser converts raw text to recipes.
type Parser struct {
	chat  ChatCompleter
	model string
}

// New returns a Parser using chat. An empty model means DefaultModel.
func New(chat ChatCompleter, model string) *Parser {
	if model == "" {
		model = DefaultModel
	}
	return &Parser{
		chat:  chat,
		model: model,
	}
}

// NewOpenAI returns a Parser backed by the OpenAI API.
func NewOpenAI(apiKey, model string) (*Parser, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Chat.Completions, model), nil
}

type modelIngredient struct {
	Amount         string `json:"amount"`
	Description    string `json:"description"`
	InstructionRef string `json:"instructionRef"`
}

type modelStep struct {
	StepNumber   int               `json:"stepNumber"`
	Instructions string            `json:"instructions"`
	Ingredients  []modelIngredient `json:"ingredients"`
}

type modelRecipe struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	SourceURL   string      `json:"sourceUrl"`
	SourceName  string      `json:"sourceName"`
	Steps       []modelStep `json:"steps"`
}

// TextToRecipe asks the model to structure raw. The result carries no
// identities and is ready for SaveRecipe.
func (p *Parser) TextToRecipe(ctx context.Context, raw, user string) (*recipe.RecipeInput, error) {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) < defaults.MinRecipeTextLength {
		return nil, apperrors.BadRequest("recipe text must be at least %d characters", defaults.MinRecipeTextLength)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ModelRequestTimeout)
	defer cancel()

	res, err := p.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "text understanding failed", err)
	}
	if len(res.Choices) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "text understanding returned no choices")
	}

	content := stripFence(res.Choices[0].Message.Content)
	var parsed modelRecipe
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "could not understand recipe text", err)
	}

	in := p.toInput(parsed)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("recipe text parsed",
		"user", user,
		"model", p.model,
		"steps", len(in.Steps),
		"tokens", res.Usage.TotalTokens)
	return in, nil
}

// toInput maps the model output to an identity-free input with steps
// numbered 1..n when any number is missing.
// A Caser holds per-call state, so each call builds its own.
func (p *Parser) toInput(m modelRecipe) *recipe.RecipeInput {
	titleCaser := cases.Title(language.English)
	in := &recipe.RecipeInput{
		Name:        titleCaser.String(strings.TrimSpace(m.Name)),
		Description: strings.TrimSpace(m.Description),
		SourceURL:   strings.TrimSpace(m.SourceURL),
		SourceName:  strings.TrimSpace(m.SourceName),
		Steps:       make([]recipe.StepInput, 0, len(m.Steps)),
	}

	renumber := false
	for _, s := range m.Steps {
		if s.StepNumber <= 0 {
			renumber = true
		}
	}

	for i, s := range m.Steps {
		step := recipe.StepInput{
			ID:           recipe.NewRef(),
			StepNumber:   s.StepNumber,
			Instructions: strings.TrimSpace(s.Instructions),
			Ingredients:  make([]recipe.IngredientInput, 0, len(s.Ingredients)),
		}
		if renumber {
			step.StepNumber = i + 1
		}
		for _, ing := range s.Ingredients {
			step.Ingredients = append(step.Ingredients, recipe.IngredientInput{
				ID:             recipe.NewRef(),
				Amount:         strings.TrimSpace(ing.Amount),
				Description:    strings.TrimSpace(ing.Description),
				InstructionRef: strings.TrimSpace(ing.InstructionRef),
			})
		}
		in.Steps = append(in.Steps, step)
	}
	return in
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
