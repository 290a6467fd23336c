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
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
)

// Rendition paths are content keyed and never rewritten with other bytes.
const publicCacheControl = "public, max-age=31536000, immutable"

// GCS stores objects in a publicly readable Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS returns a store writing to bucket through client.
func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{
		client: client,
		bucket: bucket,
	}
}

// URL returns the public URL of the object at path.
func (g *GCS) URL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, path)
}

// Upload writes data to the bucket.
func (g *GCS) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	wc := g.client.Bucket(g.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = publicCacheControl

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return g.URL(path), nil
}

// Delete removes the object at path.
func (g *GCS) Delete(ctx context.Context, path string) error {
	err := g.client.Bucket(g.bucket).Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
