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

	"github.com/mchmarny/recipebox/pkg/imagestore"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

// ImageStore persists image renditions.
type ImageStore interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}

// Resizer produces the renditions of an uploaded image.
type Resizer interface {
	Resize(data []byte) ([]imagestore.Rendition, error)
}

// TextParser turns free recipe text into a structured recipe.
type TextParser interface {
	TextToRecipe(ctx context.Context, raw, user string) (*recipe.RecipeInput, error)
}

// PhotoReader extracts recipe text from a photo.
type PhotoReader interface {
	TextFromPhoto(ctx context.Context, photo []byte) (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithImageStore sets where image renditions are stored.
func WithImageStore(s ImageStore) Option {
	return func(m *Manager) {
		m.images = s
	}
}

// WithResizer replaces the default image resizer.
func WithResizer(r Resizer) Option {
	return func(m *Manager) {
		m.resizer = r
	}
}

// WithTextParser enables importing recipes from text.
func WithTextParser(p TextParser) Option {
	return func(m *Manager) {
		m.parser = p
	}
}

// WithPhotoReader enables importing recipes from photos.
func WithPhotoReader(r PhotoReader) Option {
	return func(m *Manager) {
		m.photos = r
	}
}
