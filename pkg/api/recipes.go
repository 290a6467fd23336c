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
	"net/http"
	"strings"

	"github.com/mchmarny/recipebox/pkg/defaults"
	"github.com/mchmarny/recipebox/pkg/recipe"
	"github.com/mchmarny/recipebox/pkg/serializer"
)

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	items, err := h.mgr.GetAllRecipes(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		fail(w, r, err, "failed to list recipes")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, newRecipeList(items))
}

func (h *Handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	owner, err := caller(r)
	if err != nil {
		fail(w, r, err, "login required")
		return
	}
	var in recipe.RecipeInput
	if err := serializer.DecodeJSON(w, r, defaults.MaxRecipeBodyBytes, &in); err != nil {
		fail(w, r, err, "invalid recipe")
		return
	}
	rec, err := h.mgr.SaveRecipe(r.Context(), owner, in)
	if err != nil {
		fail(w, r, err, "failed to save recipe")
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) importText(w http.ResponseWriter, r *http.Request) {
	owner, err := caller(r)
	if err != nil {
		fail(w, r, err, "login required")
		return
	}
	var body TextImport
	if err := serializer.DecodeJSON(w, r, defaults.MaxRecipeBodyBytes, &body); err != nil {
		fail(w, r, err, "invalid text import")
		return
	}
	rec, err := h.mgr.ImportFromText(r.Context(), owner, body.Text)
	if err != nil {
		fail(w, r, err, "failed to import recipe text")
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) importPhoto(w http.ResponseWriter, r *http.Request) {
	owner, err := caller(r)
	if err != nil {
		fail(w, r, err, "login required")
		return
	}
	photo, err := readImage(w, r)
	if err != nil {
		fail(w, r, err, "invalid photo")
		return
	}
	rec, err := h.mgr.ImportFromPhoto(r.Context(), owner, photo)
	if err != nil {
		fail(w, r, err, "failed to import recipe photo")
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	rec, err := h.mgr.GetRecipeByID(r.Context(), id)
	if err != nil {
		fail(w, r, err, "failed to get recipe")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	var in recipe.RecipeInput
	if err := serializer.DecodeJSON(w, r, defaults.MaxRecipeBodyBytes, &in); err != nil {
		fail(w, r, err, "invalid recipe")
		return
	}
	rec, err := h.mgr.UpdateRecipe(r.Context(), id, in)
	if err != nil {
		fail(w, r, err, "failed to update recipe")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	rec, err := h.mgr.DeleteRecipeByID(r.Context(), id)
	if err != nil {
		fail(w, r, err, "failed to delete recipe")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) addToCookbook(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		fail(w, r, err, "login required")
		return
	}
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	entry, err := h.mgr.AddToCookbook(r.Context(), id, username)
	if err != nil {
		fail(w, r, err, "failed to save recipe to cookbook")
		return
	}
	serializer.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) removeFromCookbook(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		fail(w, r, err, "login required")
		return
	}
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	removed, err := h.mgr.RemoveFromCookbook(r.Context(), id, username)
	if err != nil {
		fail(w, r, err, "failed to remove recipe from cookbook")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, removed)
}

func (h *Handler) putImage(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	data, err := readImage(w, r)
	if err != nil {
		fail(w, r, err, "invalid image")
		return
	}
	rec, err := h.mgr.UpdateRecipeImage(r.Context(), id, data)
	if err != nil {
		fail(w, r, err, "failed to update recipe image")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		fail(w, r, err, "invalid recipe id")
		return
	}
	rec, err := h.mgr.DeleteRecipeImage(r.Context(), id)
	if err != nil {
		fail(w, r, err, "failed to delete recipe image")
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}
