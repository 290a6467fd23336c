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

package imagestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// keyLength is the number of hex characters of the content hash kept in paths.
const keyLength = 16

// ContentTypeJPEG is the content type of every stored rendition.
const ContentTypeJPEG = "image/jpeg"

// Size names a rendition.
type Size string

// Rendition sizes.
const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// Sizes returns all rendition sizes, smallest first.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// Store writes and removes objects by path.
type Store interface {
	// Upload writes data at path and returns its public URL.
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)

	// Delete removes the object at path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error
}

// Key returns the content key of an uploaded image. Renditions of different
// uploads live under different keys so their URLs never repeat.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:keyLength]
}

// Path returns the storage path of a recipe's rendition for an image key.
func Path(recipeID int64, key string, size Size) string {
	return fmt.Sprintf("recipes/%d/%s/%s.jpg", recipeID, key, size)
}
