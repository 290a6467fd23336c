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

package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const prompt = `Transcribe the recipe in this photo exactly as written.
Include the title, the ingredient list with amounts, and every instruction step in order.
Return plain text only. If the photo contains no recipe, return an empty response.`

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Generator is the subset of the genai models service used here.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Extractor reads text from photos.
type Extractor struct {
	models Generator
	model  string
}

// New returns an Extractor using models. An empty model means DefaultModel.
func New(models Generator, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{models: models, model: model}
}

// NewGemini returns an Extractor backed by the Gemini API.
func NewGemini(ctx context.Context, apiKey, model string) (*Extractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return New(client.Models, model), nil
}

// TextFromPhoto returns the recipe text in photo.
func (e *Extractor) TextFromPhoto(ctx context.Context, photo []byte) (string, error) {
	if len(photo) == 0 {
		return "", apperrors.BadRequest("photo is required")
	}
	mimeType := http.DetectContentType(photo)
	if !supportedTypes[mimeType] {
		return "", apperrors.BadRequest("unsupported photo type: %s", mimeType)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ModelRequestTimeout)
	defer cancel()

	res, err := e.models.GenerateContent(ctx, e.model, []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(photo, mimeType),
		}, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUnavailable, "photo transcription failed", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", apperrors.New(apperrors.ErrCodeInternal, "no text found in photo")
	}

	slog.Debug("photo transcribed", "model", e.model, "bytes", len(photo), "chars", len(text))
	return text, nil
}
