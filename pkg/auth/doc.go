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

// Package auth provides user accounts, signed access tokens and the HTTP
// guards that authorize recipe operations.
//
// Tokens are HS256 JWTs carrying the username and admin flag. Guard
// middleware reads them from the Authorization header:
//
//	Authorization: Bearer <token>
//
// Authenticate never rejects a request. It only records the caller when a
// valid token is present. The Require* guards then decide:
//
//	RequireLoggedIn            any valid token
//	RequireAdmin               token with isAdmin
//	RequireCorrectUserOrAdmin  token username equals the {username} path param
//	RequireOwnerOrAdmin        token username owns recipe {id}
//
// Rejections use the server error envelope with code UNAUTHORIZED.
package auth
