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

// Package imagestore stores resized recipe images.
//
// A Resizer turns an uploaded JPEG or PNG into three JPEG renditions
// (sm, md, lg). Each rendition is written to a Store under Path(recipeID,
// Key(upload), size), so a replaced image gets new URLs and stored objects
// can be cached indefinitely. Images larger than defaults.MaxImagePixels are
// rejected before decoding. Two stores are provided: GCS for a public Cloud
// Storage bucket and Local for a directory on disk, used in development.
package imagestore
