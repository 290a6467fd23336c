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
	"errors"
	"sync"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

type fakeChat struct {
	content string
	err     error
	calls   int
	params  openai.ChatCompletionNewParams
}

func (f *fakeChat) New(_ context.Context, body openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.calls++
	f.params = body
	if f.err != nil {
		return nil, f.err
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

const pancakeJSON = `{
  "name": "fluffy pancakes",
  "description": "Weekend breakfast",
  "steps": [
    {"instructions": "Mix flour and sugar", "ingredients": [
      {"amount": "2 cups", "description": "flour", "instructionRef": "flour"},
      {"amount": "1 tbsp", "description": "sugar", "instructionRef": "sugar"}
    ]},
    {"instructions": "Whisk in milk", "ingredients": [
      {"amount": "1 cup", "description": "milk", "instructionRef": "milk"}
    ]}
  ]
}`

func TestTextToRecipe(t *testing.T) {
	chat := &fakeChat{content: pancakeJSON}
	p := New(chat, "")

	in, err := p.TextToRecipe(context.Background(), "Pancakes: mix flour and sugar, whisk in milk.", "alice")
	require.NoError(t, err)

	assert.Equal(t, "Fluffy Pancakes", in.Name)
	require.Len(t, in.Steps, 2)
	assert.Equal(t, 1, in.Steps[0].StepNumber)
	assert.Equal(t, 2, in.Steps[1].StepNumber)
	assert.True(t, in.Steps[0].ID.IsNew())
	require.Len(t, in.Steps[0].Ingredients, 2)
	assert.True(t, in.Steps[0].Ingredients[0].ID.IsNew())
	assert.Equal(t, "2 cups", in.Steps[0].Ingredients[0].Amount)

	assert.Equal(t, DefaultModel, string(chat.params.Model))
	assert.NotNil(t, chat.params.ResponseFormat.OfJSONObject)
	assert.Len(t, chat.params.Messages, 2)
}

func TestTextToRecipeKeepsModelNumbers(t *testing.T) {
	chat := &fakeChat{content: "```json\n" + `{"name":"tea","steps":[
		{"stepNumber": 3, "instructions": "Steep"},
		{"stepNumber": 1, "instructions": "Boil water"}
	]}` + "\n```"}
	in, err := New(chat, "gpt-test").TextToRecipe(context.Background(), "Boil water then steep the tea.", "bob")
	require.NoError(t, err)
	require.Len(t, in.Steps, 2)
	assert.Equal(t, 3, in.Steps[0].StepNumber)
	assert.Equal(t, 1, in.Steps[1].StepNumber)
	assert.Equal(t, "gpt-test", string(chat.params.Model))
}

func TestTextToRecipeErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		chat     *fakeChat
		wantCode apperrors.ErrorCode
		wantCall bool
	}{
		{"too short", "  eggs  ", &fakeChat{}, apperrors.ErrCodeInvalidRequest, false},
		{"too short multibyte", "  日本の家庭料理  ", &fakeChat{}, apperrors.ErrCodeInvalidRequest, false},
		{"model failure", "a long enough recipe text", &fakeChat{err: errors.New("boom")}, apperrors.ErrCodeUnavailable, true},
		{"not json", "a long enough recipe text", &fakeChat{content: "sorry, I can't"}, apperrors.ErrCodeInvalidRequest, true},
		{"no name", "a long enough recipe text", &fakeChat{content: `{"name":"  ","steps":[]}`}, apperrors.ErrCodeInvalidRequest, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.chat, "").TextToRecipe(context.Background(), tt.raw, "alice")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			assert.Equal(t, tt.wantCall, tt.chat.calls > 0)
		})
	}
}

// staticChat returns the same completion without recording calls.
type staticChat struct {
	content string
}

func (c staticChat) New(_ context.Context, _ openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.content}},
		},
	}, nil
}

func TestTextToRecipeConcurrent(t *testing.T) {
	p := New(staticChat{content: pancakeJSON}, "")

	const workers, calls = 8, 50
	var wg sync.WaitGroup
	errs := make(chan error, workers*calls)
	names := make(chan string, workers*calls)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range calls {
				in, err := p.TextToRecipe(context.Background(), "Pancakes: mix flour and sugar, whisk in milk.", "alice")
				if err != nil {
					errs <- err
					continue
				}
				names <- in.Name
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(names)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	for name := range names {
		if name != "Fluffy Pancakes" {
			t.Fatalf("name = %q, want %q", name, "Fluffy Pancakes")
		}
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	_, err := NewOpenAI("", "")
	require.Error(t, err)

	p, err := NewOpenAI("sk-test", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.model)
}
