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

package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mchmarny/recipebox/pkg/auth"
	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/serializer"
	"github.com/mchmarny/recipebox/pkg/server"
)

const (
	// imageField is the multipart form field carrying uploads.
	imageField = "image"

	// multipartMemory is held in memory before spilling to temp files.
	multipartMemory = 1 << 20

	// multipartOverhead allows for boundaries and headers around the file.
	multipartOverhead = 64 << 10
)

// RecipeList is the list response.
type RecipeList struct {
	Recipes []recipe.SimpleRecipe `json:"recipes"`
	Count   int                   `json:"count"`
}

func newRecipeList(items []recipe.SimpleRecipe) RecipeList {
	if items == nil {
		items = []recipe.SimpleRecipe{}
	}
	return RecipeList{Recipes: items, Count: len(items)}
}

// UserProfile is the user detail response.
type UserProfile struct {
	User     *auth.User            `json:"user"`
	Recipes  []recipe.SimpleRecipe `json:"recipes"`
	Cookbook []recipe.SimpleRecipe `json:"cookbook"`
}

// UserList is the admin user listing.
type UserList struct {
	Users []auth.User `json:"users"`
	Count int         `json:"count"`
}

// TextImport is the body of a text import.
type TextImport struct {
	Text string `json:"text"`
}

func fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	server.WriteErrorFromErr(w, r, err, msg, nil)
}

func caller(r *http.Request) (string, error) {
	c, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		return "", apperrors.Unauthorized("login required")
	}
	return c.Username, nil
}

func recipeID(r *http.Request) (int64, error) {
	return recipe.ParseID(chi.URLParam(r, "id"))
}

// readImage returns the bytes of the multipart image field.
func readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, defaults.MaxImageUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.BadRequest("image exceeds %d bytes", defaults.MaxImageUploadBytes)
		}
		return nil, apperrors.BadRequest("multipart form with an %q file is required", imageField)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	f, _, err := r.FormFile(imageField)
	if err != nil {
		return nil, apperrors.BadRequest("multipart form with an %q file is required", imageField)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, defaults.MaxImageUploadBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to read image", err)
	}
	if len(data) > defaults.MaxImageUploadBytes {
		return nil, apperrors.BadRequest("image exceeds %d bytes", defaults.MaxImageUploadBytes)
	}
	if len(data) == 0 {
		return nil, apperrors.BadRequest("image is empty")
	}
	return data, nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if err := serializer.DecodeJSON(w, r, defaults.MaxRecipeBodyBytes, &reg); err != nil {
		fail(w, r, err, "invalid registration")
		return
	}
	u, err := h.users.Register(r.Context(), reg)
	if err != nil {
		fail(w, r, err, "failed to register user")
		return
	}
	resp, err := h.tokens.Respond(u)
	if err != nil {
		fail(w, r, err, "failed to issue token")
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := serializer.DecodeJSON(w, r, defaults.MaxRecipeBodyBytes, &creds); err != nil {
		fail(w, r, err, "invalid credentials")
		return
	}
	u, err := h.users.Authenticate(r.Context(), strings.TrimSpace(creds.Username), creds.Password)
	if err != nil {
		fail(w, r, err, "failed to authenticate")
		return
	}
	resp, err := h.tokens.Respond(u)
	if err != nil {
		fail(w, r, err, "failed to issue token")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		fail(w, r, err, "failed to list users")
		return
	}
	if users == nil {
		users = []auth.User{}
	}
	serializer.RespondJSON(w, http.StatusOK, UserList{Users: users, Count: len(users)})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	u, err := h.users.Get(ctx, username)
	if err != nil {
		fail(w, r, err, "failed to get user")
		return
	}
	owned, err := h.mgr.GetRecipesByOwner(ctx, username)
	if err != nil {
		fail(w, r, err, "failed to list recipes")
		return
	}
	saved, err := h.mgr.GetCookbook(ctx, username)
	if err != nil {
		fail(w, r, err, "failed to list cookbook")
		return
	}

	serializer.RespondJSON(w, http.StatusOK, UserProfile{
		User:     u,
		Recipes:  newRecipeList(owned).Recipes,
		Cookbook: newRecipeList(saved).Recipes,
	})
}
