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
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

// Rendition is one resized, JPEG encoded copy of an image.
type Rendition struct {
	Size   Size
	Width  int
	Height int
	Data   []byte
}

// Resizer scales images to fixed widths, preserving aspect ratio. Images are
// never scaled up.
type Resizer struct {
	widths  map[Size]int
	quality int
}

// NewResizer returns a resizer using the default rendition widths.
func NewResizer() *Resizer {
	return &Resizer{
		widths: map[Size]int{
			SizeSmall:  defaults.ImageWidthSmall,
			SizeMedium: defaults.ImageWidthMedium,
			SizeLarge:  defaults.ImageWidthLarge,
		},
		quality: defaults.ImageJPEGQuality,
	}
}

// Resize decodes a JPEG or PNG image and returns one rendition per size,
// smallest first.
func (r *Resizer) Resize(data []byte) ([]Rendition, error) {
	if len(data) == 0 {
		return nil, apperrors.BadRequest("image is empty")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.BadRequest("unsupported image: %v", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, apperrors.BadRequest("unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 ||
		int64(cfg.Width)*int64(cfg.Height) > defaults.MaxImagePixels {
		return nil, apperrors.BadRequest("image dimensions %dx%d exceed %d pixels",
			cfg.Width, cfg.Height, defaults.MaxImagePixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.BadRequest("unsupported image: %v", err)
	}

	out := make([]Rendition, 0, len(r.widths))
	for _, size := range Sizes() {
		img := scale(src, r.widths[size])

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode %s rendition: %w", size, err)
		}
		b := img.Bounds()
		out = append(out, Rendition{
			Size:   size,
			Width:  b.Dx(),
			Height: b.Dy(),
			Data:   buf.Bytes(),
		})
	}
	return out, nil
}

func scale(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
