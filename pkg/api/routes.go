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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mchmarny/recipebox/pkg/auth"
	"github.com/mchmarny/recipebox/pkg/defaults"
	"github.com/mchmarny/recipebox/pkg/manager"
)

// Handler serves the recipebox API.
type Handler struct {
	mgr    *manager.Manager
	users  *auth.Users
	tokens *auth.Tokens
	guard  *auth.Guard
}

// NewHandler returns a Handler.
func NewHandler(mgr *manager.Manager, users *auth.Users, tokens *auth.Tokens) *Handler {
	return &Handler{
		mgr:    mgr,
		users:  users,
		tokens: tokens,
		guard:  auth.NewGuard(tokens, mgr),
	}
}

// Routes mounts the API on r.
func (h *Handler) Routes(r chi.Router) {
	crud := middleware.Timeout(defaults.RecipeHandlerTimeout)
	imports := middleware.Timeout(defaults.RecipeImportTimeout)
	images := middleware.Timeout(defaults.ImageHandlerTimeout)
	owner := h.guard.RequireOwnerOrAdmin

	r.Group(func(r chi.Router) {
		r.Use(h.guard.Authenticate)

		r.Route("/v1", func(r chi.Router) {
			r.With(crud).Post("/auth/register", h.register)
			r.With(crud).Post("/auth/token", h.token)

			r.With(crud, h.guard.RequireAdmin).Get("/users", h.listUsers)
			r.With(crud, h.guard.RequireCorrectUserOrAdmin).Get("/users/{username}", h.getUser)

			r.Route("/recipes", func(r chi.Router) {
				r.Use(h.guard.RequireLoggedIn)

				r.With(crud).Get("/", h.listRecipes)
				r.With(crud).Post("/", h.createRecipe)
				r.With(imports).Post("/text", h.importText)
				r.With(imports).Post("/photo", h.importPhoto)

				r.Route("/{id}", func(r chi.Router) {
					r.With(crud).Get("/", h.getRecipe)
					r.With(crud, owner).Put("/", h.updateRecipe)
					r.With(crud, owner).Delete("/", h.deleteRecipe)
					r.With(crud).Post("/cookbook", h.addToCookbook)
					r.With(crud).Delete("/cookbook", h.removeFromCookbook)
					r.With(images, owner).Put("/image", h.putImage)
					r.With(images, owner).Delete("/image", h.deleteImage)
				})
			})
		})
	})
}

// MountFiles serves files under prefix, for the local image store.
func MountFiles(prefix string, files http.Handler) func(chi.Router) {
	prefix = "/" + strings.Trim(prefix, "/")
	return func(r chi.Router) {
		r.Handle(prefix+"/*", http.StripPrefix(prefix, files))
	}
}
