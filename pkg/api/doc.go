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

// Package api exposes recipebox over HTTP.
//
// Routes (all JSON unless noted):
//
//	POST   /v1/auth/register           register, returns a token
//	POST   /v1/auth/token              login, returns a token
//	GET    /v1/users                   list all accounts (admin)
//	GET    /v1/users/{username}        user, owned recipes and cookbook (same user or admin)
//	GET    /v1/recipes?q=              list recipes, optional name/description filter
//	POST   /v1/recipes                 create a recipe
//	POST   /v1/recipes/text            create a recipe from raw text
//	POST   /v1/recipes/photo           create a recipe from a photo (multipart "image")
//	GET    /v1/recipes/{id}            get a recipe with steps and ingredients
//	PUT    /v1/recipes/{id}            reconcile a full recipe (owner or admin)
//	DELETE /v1/recipes/{id}            delete a recipe (owner or admin)
//	POST   /v1/recipes/{id}/cookbook   save to the caller's cookbook
//	DELETE /v1/recipes/{id}/cookbook   remove from the caller's cookbook
//	PUT    /v1/recipes/{id}/image      upload an image (multipart "image", owner or admin)
//	DELETE /v1/recipes/{id}/image      remove the image (owner or admin)
//
// Every /v1/recipes route requires a bearer token.
package api
