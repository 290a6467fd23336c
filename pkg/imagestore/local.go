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
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

// Local stores objects as files under a directory and serves them from
// BaseURL.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal returns a store rooted at dir. URLs are baseURL joined with the
// object path.
func NewLocal(dir, baseURL string) (*Local, error) {
	if dir == "" {
		return nil, apperrors.BadRequest("image directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes data to a file.
func (l *Local) Upload(ctx context.Context, p, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := l.resolve(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", p, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", p, err)
	}
	return l.baseURL + "/" + strings.TrimPrefix(path.Clean("/"+p), "/"), nil
}

// Delete removes a file.
func (l *Local) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// Handler serves stored files. Mount it under the path of BaseURL.
func (l *Local) Handler() http.Handler {
	return http.FileServer(http.Dir(l.dir))
}

func (l *Local) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.Contains(p, "..") {
		return "", apperrors.BadRequest("invalid image path %q", p)
	}
	return filepath.Join(l.dir, filepath.FromSlash(clean)), nil
}
