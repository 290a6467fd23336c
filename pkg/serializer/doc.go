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

// Package serializer reads and writes recipe data as JSON, YAML or a flat
// key/value table.
//
// Writing to stdout or a file:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, recipe); err != nil {
//		return err
//	}
//
// Reading from a local file or an http(s) URL, with the format taken from
// the extension:
//
//	in, err := serializer.FromFile[recipe.RecipeInput](ctx, "pancakes.yaml")
//
// For HTTP handlers, RespondJSON buffers the encoding before writing headers
// so a failed encode never produces a partial response, and DecodeJSON
// bounds and decodes request bodies.
package serializer
