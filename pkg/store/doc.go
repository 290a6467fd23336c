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

// Package store binds the recipe aggregate to a relational database through
// GORM.
//
// Open returns a *gorm.DB for either SQLite (default, development and tests)
// or Postgres. SQLite databases are opened with foreign keys enforced, WAL
// journaling and a busy timeout, and limited to a single connection so that
// transactions serialize.
//
// The adapters (Recipes, Steps, Ingredients, Cookbook) hold no state beyond
// the handle they are bound to. Bind them to a transaction to make their
// writes part of it:
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    steps := store.NewSteps(tx)
//	    _, err := steps.Update(ctx, in)
//	    return err
//	})
//
// Lookups that fail for any reason are reported as NOT_FOUND errors from
// pkg/errors, with the engine error kept as the cause.
package store
