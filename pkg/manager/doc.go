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

// Package manager is the single entry point for changing recipe aggregates.
//
// A Manager is constructed once by the process and shared by all requests:
//
//	m := manager.New(db,
//	    manager.WithImageStore(store),
//	    manager.WithTextParser(parser),
//	    manager.WithPhotoReader(ocr),
//	)
//
// # Updates
//
// UpdateRecipe reconciles a submitted RecipeInput against the stored
// aggregate. It reads a snapshot, rejects identities that do not belong to
// the recipe, then in one transaction overwrites the scalar fields and
// applies the step buckets (deletes, creates, updates). Each step update
// reconciles that step's ingredients the same way. Any failure rolls the
// whole transaction back and surfaces as DB_TRANSACTION, except CONFLICT and
// INVALID_REQUEST which keep their code.
//
// The snapshot is not locked. Callers that need protection against
// concurrent edits pass the version they read; a stale version fails with
// CONFLICT.
package manager
