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
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPath(t *testing.T) {
	assert.Equal(t, "recipes/42/abc/sm.jpg", Path(42, "abc", SizeSmall))
	assert.Equal(t, "recipes/7/abc/lg.jpg", Path(7, "abc", SizeLarge))
	assert.Equal(t, []Size{SizeSmall, SizeMedium, SizeLarge}, Sizes())
}

func TestKey(t *testing.T) {
	a := Key([]byte("first image"))
	assert.Len(t, a, keyLength)
	assert.Equal(t, a, Key([]byte("first image")))
	assert.NotEqual(t, a, Key([]byte("second image")))
}

func TestGCSURL(t *testing.T) {
	g := NewGCS(nil, "recipebox-images")
	assert.Equal(t, "https://storage.googleapis.com/recipebox-images/recipes/1/abc/md.jpg", g.URL(Path(1, "abc", SizeMedium)))
}

func TestResize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		widths  []int
		heights []int
	}{
		{"large is scaled down", 2000, 1000, []int{240, 640, 1280}, []int{120, 320, 640}},
		{"small is never scaled up", 100, 50, []int{100, 100, 100}, []int{50, 50, 50}},
		{"between sizes", 800, 800, []int{240, 640, 800}, []int{240, 640, 800}},
	}

	r := NewResizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Resize(pngImage(t, tt.w, tt.h))
			require.NoError(t, err)
			require.Len(t, out, 3)

			for i, rend := range out {
				assert.Equal(t, Sizes()[i], rend.Size)
				assert.Equal(t, tt.widths[i], rend.Width)
				assert.Equal(t, tt.heights[i], rend.Height)

				cfg, format, err := image.DecodeConfig(bytes.NewReader(rend.Data))
				require.NoError(t, err)
				assert.Equal(t, "jpeg", format)
				assert.Equal(t, tt.widths[i], cfg.Width)
			}
		})
	}
}

func TestResizeRejectsBadInput(t *testing.T) {
	r := NewResizer()

	_, err := r.Resize(nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))

	_, err = r.Resize([]byte("definitely not an image"))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))
}

func TestResizeRejectsOversizedDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	b := buf.Bytes()

	// rewrite the IHDR width and height so the header claims 50000x50000
	binary.BigEndian.PutUint32(b[16:20], 50000)
	binary.BigEndian.PutUint32(b[20:24], 50000)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))

	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	require.Equal(t, 50000, cfg.Width)

	_, err = NewResizer().Resize(b)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))
}

func TestLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	l, err := NewLocal(dir, "http://localhost:8080/images/")
	require.NoError(t, err)

	url, err := l.Upload(ctx, Path(3, "abc", SizeSmall), ContentTypeJPEG, []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/images/recipes/3/abc/sm.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "recipes", "3", "abc", "sm.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	srv := httptest.NewServer(http.StripPrefix("/images", l.Handler()))
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/images/recipes/3/abc/sm.jpg")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jpeg-bytes", string(body))

	require.NoError(t, l.Delete(ctx, Path(3, "abc", SizeSmall)))
	_, err = os.Stat(filepath.Join(dir, "recipes", "3", "abc", "sm.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine.
	require.NoError(t, l.Delete(ctx, Path(3, "abc", SizeSmall)))
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/images")
	require.NoError(t, err)

	_, err = l.Upload(context.Background(), "../../etc/passwd", ContentTypeJPEG, []byte("x"))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidRequest))

	_, err = NewLocal("", "/images")
	assert.Error(t, err)
}
