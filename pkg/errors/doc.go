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

// Package errors provides the structured error taxonomy shared by every
// recipebox package.
//
// Every failure that crosses a package boundary is a *StructuredError carrying
// an ErrorCode. The HTTP layer maps codes to statuses with HTTPStatus:
//
//	NOT_FOUND        404  entity does not exist at the given identity
//	INVALID_REQUEST  400  input failed validation or a domain precondition
//	UNAUTHORIZED     401  caller is not authenticated or not permitted
//	CONFLICT         409  duplicate key or stale version
//	DB_TRANSACTION   500  transaction rolled back ("Database Transaction Error")
//	INTERNAL         500  anything else
//
// Usage:
//
//	if err := db.First(&r, id).Error; err != nil {
//	    return nil, errors.NotFound("recipe", id)
//	}
//
// Causes are preserved for errors.Is / errors.As but never rendered to API
// clients.
package errors
